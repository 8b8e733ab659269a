package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pguedes/gesticle/commands"
	"github.com/pguedes/gesticle/configuration"
	"github.com/pguedes/gesticle/daemon"
	"github.com/pguedes/gesticle/dispatch"
	"github.com/pguedes/gesticle/gestures"
	"github.com/pguedes/gesticle/handler"
	"github.com/pguedes/gesticle/server"
	"github.com/pguedes/gesticle/source"
	"github.com/pguedes/gesticle/utils"
)

const defaultHistoryLen = 100

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gesture daemon",
	Long: `Reads touchpad gestures from libinput and sends the configured key
sequences to the focused application. Configuration can be reloaded over
D-Bus with "gesticle reload".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runDaemon && !daemon.IsChild() {
			child, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}
			if child != nil {
				fmt.Printf("gesticle daemon started with pid %d\n", child.Pid)
				return nil
			}
		}

		return runGestures(cmd.Context())
	},
}

func setupRunLogging(hook *daemon.ShutdownHook) error {
	debug := runDebug || verbose
	if runLogFile == "-" {
		utils.SetVerbose(debug)
		return nil
	}

	path := runLogFile
	if path == "" {
		var err error
		if path, err = configuration.LogFilePath(); err != nil {
			return err
		}
	}

	closer, err := utils.SetupLogging(debug, path)
	if err != nil {
		return err
	}
	hook.RegisterCloser("log file", closer)
	return nil
}

func eventSource() source.EventSource {
	if runReplay != "" {
		utils.Info("replaying events from %s", runReplay)
		return source.NewReplayFile(runReplay)
	}
	return source.NewDebugEvents()
}

func dispatcher() dispatch.Dispatcher {
	if runDryRun {
		return dispatch.DryRun{}
	}
	return dispatch.NewKeyDispatcher()
}

func appContext() dispatch.AppContext {
	if runApp != "" {
		return dispatch.StaticApp(runApp)
	}
	return dispatch.NewWindowContext()
}

func runGestures(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hook := daemon.NewShutdownHook()
	defer func() {
		if err := hook.Shutdown(); err != nil {
			utils.Error("%v", err)
		}
	}()

	if err := setupRunLogging(hook); err != nil {
		return err
	}

	path, err := configuration.ConfigFilePath(configFile)
	if err != nil {
		return err
	}
	resolver, err := configuration.NewResolver(path)
	if err != nil {
		return err
	}
	commands.SetResolver(resolver)

	if runListen != "" {
		addr, err := server.ListenAddress(runListen)
		if err != nil {
			return err
		}
		if !utils.IsAddressAvailable(addr) {
			return fmt.Errorf("control server address %s is already in use", addr)
		}
	}

	history := handler.NewHistory(runHistoryLen)
	commands.SetHistory(history)
	publishers := handler.Publishers{history}

	if !runNoDBus {
		svc, err := daemon.ServeReload(resolver)
		switch {
		case errors.Is(err, daemon.ErrAlreadyRunning):
			return err
		case err != nil:
			utils.Warn("configuration reload over d-bus is unavailable: %v", err)
		default:
			hook.RegisterCloser("d-bus", svc)
		}
	}

	var watcher *configuration.Watcher
	if runWatch {
		if watcher, err = configuration.NewWatcher(resolver, path, configuration.DefaultDebounce); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	if runListen != "" {
		srv := server.New(server.Options{EnableCORS: runCORS, OnShutdown: cancel})
		publishers = append(publishers, srv.Hub())
		g.Go(func() error {
			return srv.ListenAndServe(gctx, runListen)
		})
	}

	loop := &handler.Loop{
		Source:     eventSource(),
		Classifier: gestures.NewClassifier(resolver),
		Handler:    handler.NewGestureHandler(resolver, dispatcher(), appContext(), publishers),
	}
	g.Go(func() error {
		// the loop ending, for example at the end of a replay, stops everything else
		defer cancel()
		return loop.Run(gctx)
	})

	utils.Info("gesticle %s started with configuration %s", version, path)
	err = g.Wait()
	utils.Info("gesticle stopped")
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "use a specific configuration file")
	runCmd.Flags().BoolVarP(&runDebug, "debug", "d", false, "log debug information, also to the terminal")
	runCmd.Flags().BoolVar(&runDaemon, "daemon", false, "run in the background")
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "reload the configuration when the file changes")
	runCmd.Flags().StringVar(&runListen, "listen", "", "start the JSON-RPC control server on this address (e.g., 'localhost:12000')")
	runCmd.Flags().BoolVar(&runCORS, "cors", false, "enable CORS support on the control server")
	runCmd.Flags().StringVar(&runReplay, "replay", "", "read recorded events from a JSON-lines file ('-' for stdin) instead of libinput")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "log actions instead of sending key sequences")
	runCmd.Flags().StringVar(&runApp, "app", "", "use this application context instead of the focused window")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "log file path, '-' for the terminal only (default ~/.gesticle/gesticle.log)")
	runCmd.Flags().BoolVar(&runNoDBus, "no-dbus", false, "do not serve configuration reloads over d-bus")
	runCmd.Flags().IntVar(&runHistoryLen, "history", defaultHistoryLen, "number of handled gestures kept for gestures.recent")
}
