package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/praecolabs/praeco/internal/common"
	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/interfaces"
	"github.com/praecolabs/praeco/internal/models"
	"github.com/praecolabs/praeco/internal/services/ads"
	"github.com/praecolabs/praeco/internal/services/auth"
	"github.com/praecolabs/praeco/internal/storage/badger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: praeco.toml)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	login := flag.Bool("login", false, "Run the interactive authorization flow and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("PRAECO_CONFIG")
	}
	if path == "" {
		path = "praeco.toml"
	}

	config, err := common.LoadFromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.InitLogger(config)

	// Credential persistence is optional; without it tokens live in memory
	var credStorage interfaces.CredentialStorage
	db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		logger.Warn().Err(err).Msg("Credential store unavailable, tokens will not persist")
	} else {
		defer db.Close()
		credStorage = badger.NewCredentialStorage(db, logger)
	}

	authService := auth.NewService(config, credStorage, logger)

	if *login {
		runLogin(authService, logger)
		return
	}

	graphOpts := []graph.ClientOption{
		graph.WithBaseURL(config.Graph.BaseURL),
		graph.WithAPIVersion(config.Graph.APIVersion),
		graph.WithLogger(logger),
		graph.WithTokenSource(authService),
		graph.WithInvalidator(authService.InvalidateToken),
	}
	if config.Graph.RateLimit > 0 {
		graphOpts = append(graphOpts, graph.WithRateLimit(config.Graph.RateLimit))
	}
	graphClient := graph.NewClient(graphOpts...)

	adsService := ads.NewService(graphClient, logger)

	mcpServer := server.NewMCPServer(
		"praeco",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Account tools
	mcpServer.AddTool(createGetAdAccountsTool(), handleGetAdAccounts(adsService, authService, logger))
	mcpServer.AddTool(createGetAccountInfoTool(), handleGetAccountInfo(adsService, authService, logger))

	// Campaign tools
	mcpServer.AddTool(createGetCampaignsTool(), handleGetCampaigns(adsService, authService, logger))
	mcpServer.AddTool(createGetCampaignDetailsTool(), handleGetCampaignDetails(adsService, authService, logger))
	mcpServer.AddTool(createCreateCampaignTool(), handleCreateCampaign(adsService, authService, logger))

	// Ad set tools
	mcpServer.AddTool(createGetAdSetsTool(), handleGetAdSets(adsService, authService, logger))
	mcpServer.AddTool(createGetAdSetDetailsTool(), handleGetAdSetDetails(adsService, authService, logger))
	mcpServer.AddTool(createCreateAdSetTool(), handleCreateAdSet(adsService, authService, logger))
	mcpServer.AddTool(createUpdateAdSetTool(), handleUpdateAdSet(adsService, authService, logger))

	// Ad and creative tools
	mcpServer.AddTool(createGetAdsTool(), handleGetAds(adsService, authService, logger))
	mcpServer.AddTool(createGetAdCreativesTool(), handleGetAdCreatives(adsService, authService, logger))

	// Insights and auth tools
	mcpServer.AddTool(createGetInsightsTool(), handleGetInsights(adsService, authService, logger))
	mcpServer.AddTool(createAuthenticateTool(), handleAuthenticate(authService, logger))

	// Blocks on stdio
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}

// runLogin drives the authorization flow interactively: print the login URL,
// then poll until the provider reports a token or the wait times out.
func runLogin(authService *auth.Service, logger arbor.ILogger) {
	common.PrintBanner(common.GetVersion())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := authService.InitiateAuthFlow(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not start the authorization flow")
	}

	if result.Status == models.AuthStatusAuthenticated {
		fmt.Println("Already authenticated.")
		return
	}

	fmt.Println("Open this URL in your browser to authorize:")
	fmt.Println()
	fmt.Printf("    %s\n", result.LoginURL)
	fmt.Println()
	fmt.Println("Waiting for authorization...")

	if _, err := authService.AwaitAuthorization(ctx, 3*time.Second); err != nil {
		logger.Fatal().Err(err).Msg("Authorization did not complete")
	}

	fmt.Println("Authenticated. Token cached for future runs.")
}
