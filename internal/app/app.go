// Package app wires the operator together and runs it until a termination
// signal arrives.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/engula/engula-operator/internal/adapters/outbound/k8s"
	"github.com/engula/engula-operator/internal/config"
	"github.com/engula/engula-operator/internal/httpserver"
	"github.com/engula/engula-operator/internal/infra/metrics"
	"github.com/engula/engula-operator/internal/infra/resync"
	"github.com/engula/engula-operator/internal/infra/shutdown"
	"github.com/engula/engula-operator/internal/logic/controller"
)

// ErrTerminationFileFound is returned when the process starts while the pod is terminating.
var ErrTerminationFileFound = errors.New("termination file found")

type App struct {
	logger         *slog.Logger
	cfg            *config.Config
	appState       appstater
	signals        <-chan os.Signal
	installChecker installChecker
	pingers        component
	components     []pingedComponent
	background     []component
	controllers    []*controller.Service
}

// New creates a new application instance with all dependencies wired.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
	pingers component,
	signals <-chan os.Signal,
) (*App, error) {
	kubeConfig, err := clientcmd.BuildConfigFromFlags(cfg.KubeMaster, cfg.KubeConfig)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	return newApp(logger, cfg, appState, pingers, signals, clientset, dynamicClient)
}

func newApp(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
	pingers component,
	signals <-chan os.Signal,
	clientset kubernetes.Interface,
	dynamicClient dynamic.Interface,
) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	broadcaster := k8s.NewEventBroadcaster(logger, clientset, cfg.Reporter)
	repo := k8s.New(logger, clientset, dynamicClient, broadcaster.Recorder())

	a := &App{
		logger:         logger,
		cfg:            cfg,
		appState:       appState,
		signals:        signals,
		installChecker: repo,
		pingers:        pingers,
	}

	// Registered first so it is shut down last, after every controller stopped emitting.
	appState.RegisterShutdowner(broadcaster)

	a.components = append(a.components,
		httpserver.New(logger, appState, cfg.HTTPPort),
		httpserver.NewMetricsServer(logger, registry, cfg.MetricsPort),
	)

	for _, kind := range controller.Kinds() {
		reconciler := controller.NewReconciler(
			logger,
			repo,
			kind,
			appState,
			metrics.New(registry, kind.MetricsPrefix()),
		)
		source := k8s.NewSource(logger, dynamicClient, kind, cfg.Namespace, cfg.ResyncPeriod)
		service := controller.New(logger, reconciler, source, cfg.Workers)

		a.controllers = append(a.controllers, service)
		a.components = append(a.components, service)
	}

	if cfg.ResyncSchedule != "" {
		schedule, err := resync.ParseSchedule(cfg.ResyncSchedule)
		if err != nil {
			return nil, fmt.Errorf("parse resync schedule: %w", err)
		}

		targets := make([]resync.Resyncer, 0, len(a.controllers))
		for _, service := range a.controllers {
			targets = append(targets, service)
		}

		a.background = append(a.background, resync.NewScheduler(logger, schedule, targets...))
	}

	return a, nil
}

// Run starts the application and blocks until ctx is cancelled or a
// termination signal arrives, then shuts every component down.
func (a *App) Run(originCtx context.Context) (err error) {
	if shutdown.CheckTerminationFile(originCtx, a.logger, a.cfg.TerminationFile) {
		return fmt.Errorf("check termination: %w", ErrTerminationFileFound)
	}

	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go shutdown.HandleSignals(ctx, a.logger, a.signals, cancel)

	defer func() {
		cancel()

		shutdownErr := a.appState.Shutdown(originCtx)
		if shutdownErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown: %w", shutdownErr))
		}
	}()

	err = a.appState.SetStarting(ctx)
	if err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	for _, kind := range controller.Kinds() {
		err = a.installChecker.CheckInstalledQuery(ctx, kind)
		if err != nil {
			return fmt.Errorf("check %s: %w", kind.Name, err)
		}
	}

	err = a.start(ctx)
	if err != nil {
		return err
	}

	readies := make([]<-chan struct{}, 0, len(a.components)+len(a.background)+1)
	readies = append(readies, a.pingers.Ready())

	for _, c := range a.components {
		readies = append(readies, c.Ready())
	}

	for _, c := range a.background {
		readies = append(readies, c.Ready())
	}

	<-allChannelsClose(ctx, a.logger, readies...)

	if ctx.Err() != nil {
		a.logger.InfoContext(ctx, "terminated before all components became ready")

		return nil
	}

	err = a.appState.SetRunning(ctx)
	if err != nil {
		return fmt.Errorf("set running: %w", err)
	}

	a.logger.InfoContext(ctx, "engula operator is running",
		"kinds", len(a.controllers),
		"namespace", a.cfg.Namespace,
		"workers", a.cfg.Workers,
	)

	<-ctx.Done()

	a.logger.InfoContext(originCtx, "stopping engula operator")

	return nil
}

// start launches the components in dependency order and registers each for
// shutdown as soon as it runs.
func (a *App) start(ctx context.Context) error {
	err := a.pingers.Start(ctx)
	if err != nil {
		return fmt.Errorf("start %s: %w", a.pingers.Name(), err)
	}

	a.appState.RegisterShutdowner(a.pingers)

	for _, c := range a.components {
		err = c.Start(ctx)
		if err != nil {
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}

		a.appState.RegisterShutdowner(c)

		err = a.appState.RegisterPinger(c)
		if err != nil {
			return fmt.Errorf("register pinger %s: %w", c.Name(), err)
		}
	}

	for _, c := range a.background {
		err = c.Start(ctx)
		if err != nil {
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}

		a.appState.RegisterShutdowner(c)
	}

	return nil
}

// allChannelsClose returns a channel closed once every input channel is
// closed or ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	var wg sync.WaitGroup

	for _, ch := range chans {
		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case <-ch:
			case <-ctx.Done():
			}
		}()
	}

	go func() {
		wg.Wait()

		if ctx.Err() != nil {
			logger.DebugContext(ctx, "stopped waiting for readiness", "reason", ctx.Err())
		}

		close(out)
	}()

	return out
}
