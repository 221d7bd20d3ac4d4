// Package bot wires the privacy audit state machine to the Telegram runtime:
// command handlers, keyboards, message rendering, and the effect executor.
package bot

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/m3rciful/privacybot/core/bootstrap"
	coreconfig "github.com/m3rciful/privacybot/core/config"
	coredatabase "github.com/m3rciful/privacybot/core/database"
	coretelegram "github.com/m3rciful/privacybot/core/telegram"
	"github.com/m3rciful/privacybot/core/telegram/commands"
	"github.com/m3rciful/privacybot/core/telegram/router"
	tgsender "github.com/m3rciful/privacybot/core/telegram/sender"
	"github.com/m3rciful/privacybot/internal/archive"
	"github.com/m3rciful/privacybot/internal/audit"
	"github.com/m3rciful/privacybot/internal/quiz"
	"github.com/m3rciful/privacybot/internal/report"
	"github.com/m3rciful/privacybot/internal/session"
)

// Carrier wraps the loaded configuration file.
type Carrier struct {
	cfg *coreconfig.Config
}

// CoreConfig exposes the embedded core configuration.
func (c *Carrier) CoreConfig() *coreconfig.Config { return c.cfg }

// LoadConfig reads and validates the bot configuration.
func LoadConfig(path string) (*Carrier, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &Carrier{cfg: cfg}, nil
}

// App is the assembled privacy audit bot.
type App struct {
	cfg      *coreconfig.Config
	store    *session.Store
	machine  *audit.Machine
	recorder *archive.Recorder
	sender   *tgsender.Dispatcher

	startedAt   time.Time
	answerPause time.Duration
	sleep       func(time.Duration)
	fallbackSeq atomic.Uint64
}

// New bootstraps infrastructure and assembles the application.
func New(carrier *Carrier) (*App, error) {
	if carrier == nil || carrier.cfg == nil {
		return nil, fmt.Errorf("bot: nil config carrier")
	}
	cfg := carrier.cfg

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg,
		Database: databaseConfig(cfg),
	})
	if err != nil {
		return nil, err
	}

	store := session.NewStore()
	app := &App{
		cfg:         cfg,
		store:       store,
		machine:     audit.New(quiz.Default(), store),
		startedAt:   time.Now(),
		answerPause: time.Duration(cfg.Bot.AnswerPauseMS) * time.Millisecond,
		sleep:       time.Sleep,
	}
	if res.DB != nil {
		app.recorder = archive.NewRecorder(res.DB)
	}
	return app, nil
}

// CoreConfig exposes the core configuration for the runner.
func (a *App) CoreConfig() *coreconfig.Config { return a.cfg }

// databaseConfig converts the config file's database section into the
// connection settings core/database expects.
func databaseConfig(cfg *coreconfig.Config) coredatabase.Config {
	return coredatabase.Config{
		Enabled:        cfg.Database.Enabled,
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Name:           cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: cfg.Database.MaxConnections,
	}
}

// sendErrors reports how many outbound sends failed since startup.
func (a *App) sendErrors() uint64 {
	if a.sender == nil {
		return 0
	}
	return a.sender.ErrorCount()
}

func (a *App) currentStats(now time.Time) report.Stats {
	gen := a.machine.Generator()
	return report.Stats{
		ActiveSessions: a.store.Len(),
		StartedToday:   gen.StartedToday(now),
		MeanScore:      gen.MeanScore(),
	}
}

// TelegramRunOptions assembles the registry, routes, and middleware chain.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Начать проверку приватности",
		Aliases:     []string{"help"},
	})
	reg.RegisterCommand("/version", commands.Command{
		Handler:     a.handleVersion,
		Description: "Информация о боте",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Статистика бота",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := reg.RegisterCallback(startCheckCallback, a.handleBeginCallback); err != nil {
		return coretelegram.RunOptions{}, err
	}
	reg.SetTextFallback(a.handleFallback)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		IsAdmin:       a.cfg.Bot.IsAdmin,
		OnAdminReject: a.handleAdminReject,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a, reg, router.TextOptions{
		IsAdmin:       a.cfg.Bot.IsAdmin,
		OnAdminReject: a.handleAdminReject,
	})...)

	// The app owns the dispatcher so /stats can read its error counter;
	// RunTelegram still closes it on shutdown.
	if a.sender == nil {
		a.sender = tgsender.NewDispatcher(tgsender.Options{})
	}

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Dispatcher:  a.sender,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}
