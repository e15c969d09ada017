package di

import (
	"fmt"
	"time"

	"quiz-solver/internal/adapter/httpapi"
	"quiz-solver/internal/application/port/input"
	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/application/service"
	"quiz-solver/internal/infrastructure/browser/rod"
	"quiz-solver/internal/infrastructure/decode"
	"quiz-solver/internal/infrastructure/fetch"
	"quiz-solver/internal/infrastructure/llm/openai"
	"quiz-solver/internal/infrastructure/logger"
	"quiz-solver/internal/usecase/extractor"
	"quiz-solver/internal/usecase/resolver"
	"quiz-solver/internal/usecase/solver"
	"quiz-solver/internal/usecase/submitter"
)

type Config struct {
	QuizSecret      string
	LLMAPIKey       string // empty disables the LLM tier; heuristics still run
	LLMModel        string
	LLMBaseURL      string
	BrowserHeadless bool
	EnableOCR       bool
	BudgetSeconds   int
	LogLevel        string
}

type Container struct {
	Logger   output.LoggerPort
	Renderer output.RendererPort
	Registry *service.SessionRegistry
	Solver   input.QuizSolver
	Server   *httpapi.Server
	Budget   time.Duration
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	renderer, err := rod.NewRenderer(browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	var compute output.ComputePort
	if cfg.LLMAPIKey != "" {
		llmCfg := openai.DefaultConfig(cfg.LLMAPIKey, cfg.LLMModel)
		if cfg.LLMBaseURL != "" {
			llmCfg.BaseURL = cfg.LLMBaseURL
		}
		compute = openai.NewAdapter(llmCfg, log)
	} else {
		log.Warn("No LLM API key configured, answers will use heuristics only")
	}

	downloader := fetch.NewDownloader(log)
	decoder := decode.NewRegistry(log, cfg.EnableOCR)

	engine := extractor.New(renderer, downloader, log)
	answers := resolver.New(compute, decoder, log)
	client := submitter.New(log)
	quizSolver := solver.New(engine, answers, client, log)

	budget := solver.DefaultBudget
	if cfg.BudgetSeconds > 0 {
		budget = time.Duration(cfg.BudgetSeconds) * time.Second
	}

	registry := service.NewSessionRegistry()
	server := httpapi.NewServer(quizSolver, registry, log, cfg.QuizSecret, budget)

	return &Container{
		Logger:   log,
		Renderer: renderer,
		Registry: registry,
		Solver:   quizSolver,
		Server:   server,
		Budget:   budget,
	}, nil
}

func (c *Container) Close() {
	if c.Renderer != nil {
		c.Renderer.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
