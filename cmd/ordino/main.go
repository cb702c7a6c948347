package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/app"
	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/models"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	inputPath    = flag.String("input", "-", "Input file path, or - for stdin")
	title        = flag.String("title", "", "Article title")
	language     = flag.String("language", "auto", "Language hint: auto, ru or en")
	batchMode    = flag.Bool("batch", false, "Treat input as a JSON array of articles and cluster them together")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	// A .version file next to the executable overrides the compiled-in version
	common.LoadVersionFromFile()

	if *showVersion || *showVersionV {
		fmt.Printf("Ordino version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("ordino.toml"); err == nil {
			configFiles = append(configFiles, "ordino.toml")
		}
	}

	config, err := common.LoadConfig(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Info().
		Strs("config_files", configFiles).
		Str("environment", config.Environment).
		Str("provider", config.LLM.DefaultProvider).
		Msg("Configuration loaded")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	text, err := readInput(*inputPath)
	if err != nil {
		logger.Fatal().Err(err).Str("input", *inputPath).Msg("Failed to read input")
		os.Exit(1)
	}

	ctx := context.Background()

	var output interface{}
	if *batchMode {
		var inputs []models.ArticleInput
		if err := json.Unmarshal(text, &inputs); err != nil {
			logger.Fatal().Err(err).Msg("Batch input must be a JSON array of articles")
			os.Exit(1)
		}
		results, err := application.Categorizer.CategorizeBatch(ctx, inputs)
		if err != nil {
			logger.Fatal().Err(err).Msg("Batch categorization failed")
			os.Exit(1)
		}
		if application.Results != nil {
			if err := application.Results.SaveResults(results); err != nil {
				logger.Warn().Err(err).Msg("Failed to persist results")
			}
		}
		output = results
	} else {
		result, err := application.Categorizer.Categorize(ctx, models.ArticleInput{
			Text:     string(text),
			Title:    *title,
			Language: *language,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Categorization failed")
			os.Exit(1)
		}
		if application.Results != nil {
			if err := application.Results.SaveResult(result); err != nil {
				logger.Warn().Err(err).Msg("Failed to persist result")
			}
		}
		output = result
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to encode result")
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

// readInput reads the article text from a file or stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
