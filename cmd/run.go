package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spigell/company-scout/internal/ai"
	"github.com/spigell/company-scout/internal/ai/gemini"
	"github.com/spigell/company-scout/internal/candidate"
	"github.com/spigell/company-scout/internal/coverletter"
	"github.com/spigell/company-scout/internal/hunter"
	"github.com/spigell/company-scout/internal/logger"
	"github.com/spigell/company-scout/internal/report"
	"github.com/spigell/company-scout/internal/research"
	"github.com/spigell/company-scout/internal/search"
	"github.com/spigell/company-scout/internal/secrets"
	"github.com/spigell/company-scout/internal/util"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Research a company and save a markdown report",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("company", "c", "", "company name to research (prompted for when unset)")
	runCmd.Flags().StringP("url", "u", "", "company website, enables contact email discovery")
	runCmd.Flags().String("info", "", "additional context appended to every research query")
	runCmd.Flags().String("interest", "", "why you are interested in the company, used in the cover letter")
	runCmd.Flags().StringP("output-dir", "o", "", "directory for saved reports")
	runCmd.Flags().String("candidate-file", "", "json file with the candidate profile for compatibility checks and the cover letter")
	runCmd.Flags().Bool("no-pdf", false, "skip rendering the report as a pdf")

	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("candidate-file", runCmd.Flags().Lookup("candidate-file"))
}

// runInput is everything the pipeline needs from the user.
type runInput struct {
	Company  string
	URL      string
	Info     string
	Interest string
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the company-scout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	hunterKey, err := secrets.Load(secrets.Source{
		Name:  "hunter api key",
		Value: viper.GetString("hunter.api-key"),
		File:  viper.GetString("hunter.api-key-file"),
	})
	if err != nil {
		logger.Fatal(
			"loading hunter api key",
			zap.Error(err),
			zap.String("hint", "set HUNTER_API_KEY or the 'hunter.api-key' key in the configuration file"),
		)
	}

	provider, err := buildProvider(logger)
	if err != nil {
		logger.Fatal(
			"building a search provider",
			zap.Error(err),
			zap.String("hint", "set PERPLEXITY_API_KEY or OPENROUTER_API_KEY"),
		)
	}

	input, err := gatherInput(cmd)
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			logger.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
		logger.Fatal("gathering input", zap.Error(err))
	}

	logger.Info("starting the research",
		zap.String("company", input.Company),
		zap.String("provider", provider.Name()),
	)

	queries := research.PlanQueries(input.Company, input.Info)

	results, err := collectResults(ctx, provider, queries, logger)
	if err != nil {
		logger.Info("exiting", zap.String("reason", "interrupted"))
		return
	}

	emails := collectEmails(ctx, hunterKey, input.URL, logger)
	if aborted(ctx, logger) {
		return
	}

	restriction := research.ExtractRestrictions(results, logger)
	restriction.CompanyURL = input.URL

	profile := loadProfile(logger)

	verdict := research.CheckCompatibility(restriction, profile)
	if verdict.Warning != "" {
		logger.Warn("location compatibility", zap.String("warning", verdict.Warning))
	}

	coverLetter := composeCoverLetter(ctx, config, provider, input, profile, results, logger)
	if aborted(ctx, logger) {
		return
	}

	generatedAt := time.Now()

	doc := report.Assemble(report.Params{
		Company:        input.Company,
		CompanyURL:     input.URL,
		AdditionalInfo: input.Info,
		GeneratedAt:    generatedAt,
		Queries:        queries,
		Results:        results,
		Restriction:    restriction,
		Warning:        verdict.Warning,
		Emails:         emails,
		CoverLetter:    coverLetter,
	})

	writer := report.NewWriter(viper.GetString("output-dir"), logger)

	saved, err := writer.Save(ctx, input.Company, doc, restriction, generatedAt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
		logger.Fatal("saving the report", zap.Error(err))
	}

	renderPDF := viper.GetBool("report.pdf")
	if cmd.Flag("no-pdf").Value.String() == "true" {
		renderPDF = false
	}

	if renderPDF {
		pdfPath := strings.TrimSuffix(saved.MarkdownPath, ".md") + ".pdf"
		if err := report.RenderPDF(ctx, doc, pdfPath); err != nil {
			logger.Warn("rendering pdf", zap.Error(err))
		} else {
			logger.Info("pdf saved", zap.String("path", pdfPath))
		}
	}
}

// aborted reports whether the user interrupted the run. The pipeline checks
// it between stages so an interrupt never persists a partial report.
func aborted(ctx context.Context, logger *zap.Logger) bool {
	if ctx.Err() == nil {
		return false
	}

	logger.Info("exiting", zap.String("reason", "interrupted"))
	return true
}

// gatherInput reads the run parameters from flags, prompting for the missing
// ones only when the company flag is unset.
func gatherInput(cmd *cobra.Command) (*runInput, error) {
	input := &runInput{
		Company:  strings.TrimSpace(cmd.Flag("company").Value.String()),
		URL:      strings.TrimSpace(cmd.Flag("url").Value.String()),
		Info:     strings.TrimSpace(cmd.Flag("info").Value.String()),
		Interest: strings.TrimSpace(cmd.Flag("interest").Value.String()),
	}

	if input.Company != "" {
		return input, nil
	}

	companyPrompt := promptui.Prompt{
		Label: "Company name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("company name is required")
			}
			return nil
		},
	}

	company, err := companyPrompt.Run()
	if err != nil {
		return nil, err
	}
	input.Company = strings.TrimSpace(company)

	optional := []struct {
		label  string
		target *string
	}{
		{"Company website (optional)", &input.URL},
		{"Additional context (optional)", &input.Info},
		{"Why are you interested? (optional)", &input.Interest},
	}

	for _, field := range optional {
		if *field.target != "" {
			continue
		}

		prompt := promptui.Prompt{Label: field.label}
		value, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		*field.target = strings.TrimSpace(value)
	}

	return input, nil
}

// buildProvider picks the first search backend with a configured key,
// preferring perplexity.
func buildProvider(logger *zap.Logger) (search.Provider, error) {
	perplexityKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "perplexity api key",
		Value: viper.GetString("search.perplexity.api-key"),
		File:  viper.GetString("search.perplexity.api-key-file"),
	})
	if err != nil {
		return nil, err
	}
	if perplexityKey != "" {
		return search.NewPerplexity(perplexityKey, logger), nil
	}

	openrouterKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "openrouter api key",
		Value: viper.GetString("search.openrouter.api-key"),
		File:  viper.GetString("search.openrouter.api-key-file"),
	})
	if err != nil {
		return nil, err
	}
	if openrouterKey != "" {
		return search.NewOpenRouter(openrouterKey, viper.GetString("search.openrouter.model"), logger), nil
	}

	return nil, errors.New("no search api key is configured")
}

// collectResults runs the research queries sequentially with a politeness
// delay between calls. A failed query degrades to a missing result; the only
// returned error is a cancelled context.
func collectResults(ctx context.Context, provider search.Provider, queries []research.Query, logger *zap.Logger) ([]*search.Result, error) {
	delay := viper.GetDuration("query-delay")
	results := make([]*search.Result, len(queries))

	for i, query := range queries {
		if i > 0 {
			if err := util.WaitFor(ctx, delay); err != nil {
				return nil, err
			}
		}

		logger.Info("running research query",
			zap.String("title", query.Title),
			zap.Int("step", i+1),
			zap.Int("total", len(queries)),
		)

		result, err := provider.Search(ctx, query.Text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("research query failed", zap.String("title", query.Title), zap.Error(err))
			continue
		}

		results[i] = result
	}

	return results, nil
}

// collectEmails discovers contact emails for the company website. Every
// failure mode degrades to no contacts.
func collectEmails(ctx context.Context, apiKey, website string, logger *zap.Logger) *hunter.Classification {
	if website == "" {
		logger.Info("skipping email discovery", zap.String("reason", "no company website provided"))
		return nil
	}

	domain, malformed := hunter.NormalizeDomain(website)
	if malformed {
		logger.Warn("company website does not look like a registrable domain",
			zap.String("website", website),
			zap.String("domain", domain),
		)
	}
	if domain == "" {
		return nil
	}

	resp, err := hunter.New(ctx, logger, apiKey).DomainSearch(domain)
	if err != nil {
		logger.Warn("hunter domain search failed", zap.String("domain", domain), zap.Error(err))
		return nil
	}

	classified := hunter.Classify(resp)
	if classified.Empty() {
		logger.Info("no contact emails found", zap.String("domain", domain))
		return nil
	}

	return &classified
}

func loadProfile(logger *zap.Logger) *candidate.Profile {
	path := viper.GetString("candidate-file")
	if path == "" {
		return nil
	}

	profile, err := candidate.Load(path)
	if err != nil {
		logger.Warn("loading candidate profile", zap.String("path", path), zap.Error(err))
		return nil
	}
	if profile == nil {
		logger.Info("candidate profile not found", zap.String("path", path))
	}

	return profile
}

// composeCoverLetter builds the generation backend and renders the letter
// block. A missing backend or a non-remote-friendly company yields no letter.
func composeCoverLetter(ctx context.Context, config *Config, provider search.Provider, input *runInput, profile *candidate.Profile, results []*search.Result, logger *zap.Logger) string {
	if !research.AlwaysRemote(results) {
		logger.Info("skipping cover letter", zap.String("reason", "company does not look remote-friendly"))
		return ""
	}

	generator, err := buildGenerator(ctx, config, provider)
	if err != nil {
		logger.Warn("skipping cover letter", zap.Error(err))
		return ""
	}

	maxLogLength := 0
	if config != nil && config.AI != nil {
		maxLogLength = config.AI.MaxLogLength
	}

	name, model := provider.Name(), ""
	if g, ok := generator.(*gemini.Generator); ok {
		name, model = "gemini", g.Model()
	}

	composer := coverletter.NewComposer(generator, logger.With(util.GenerationFields(name, model)...), maxLogLength)

	return composer.Compose(ctx, coverletter.Input{
		Company:            input.Company,
		CompanyDescription: fmt.Sprintf("%s is a company that appears to be remote-friendly.", input.Company),
		InterestReason:     input.Interest,
		Profile:            profile,
	})
}

// buildGenerator returns the text generation backend for the cover letter.
// The search provider doubles as the default backend; gemini is used when
// selected explicitly.
func buildGenerator(ctx context.Context, config *Config, provider search.Provider) (ai.Generator, error) {
	providerName := ""
	if config != nil && config.AI != nil {
		providerName = strings.TrimSpace(strings.ToLower(config.AI.Provider))
	}

	switch providerName {
	case "", "search":
		if generator, ok := provider.(ai.Generator); ok {
			return generator, nil
		}
		return nil, fmt.Errorf("search provider %s cannot generate text", provider.Name())
	case "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: viper.GetString("ai.gemini.api-key"),
			File:  viper.GetString("ai.gemini.api-key-file"),
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set GEMINI_API_KEY or ai.gemini.api-key)", err)
		}

		return gemini.NewGenerator(ctx, apiKey, viper.GetString("ai.gemini.model"))
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", providerName)
	}
}
