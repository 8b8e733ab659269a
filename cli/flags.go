package cli

var (
	verbose bool

	// config file override, shared by run and config commands
	configFile string

	// for run command
	runDebug      bool
	runDaemon     bool
	runWatch      bool
	runListen     string
	runCORS       bool
	runReplay     string
	runDryRun     bool
	runApp        string
	runLogFile    string
	runNoDBus     bool
	runHistoryLen int

	// for config get/list commands
	configApp string

	// for reload command
	reloadHTTP string
)
