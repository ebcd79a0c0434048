package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/Cloud-Coop/cloudcoal/util"
)

var (
	// VERSION is set during build
	VERSION string
	log     = logging.MustGetLogger("cloudcoal")
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cloudcoal",
	Short: "Coalition analysis for cooperating cloud infrastructure providers",
	Long: `
   ________                ________          __
  / ____/ /___  __  ______/ / ____/___  ____ _/ /
 / /   / / __ \/ / / / __  / /   / __ \/ __ '/ /
/ /___/ / /_/ / /_/ / /_/ / /___/ /_/ / /_/ / /
\____/_/\____/\__,_/\__,_/\____/\____/\__,_/_/

	`,
}

// Execute adds all child commands to the root command
func Execute() {
	VERSION = "1.0"
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(runCmd)

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func check(e error, msg string) {
	if e != nil {
		log.Fatalf(msg+" %s", e.Error())
	}
}

//Set where and how to write logs
func setLogger(logFile string) {
	if logFile == "" {
		logFile = util.DEFAULT_LOGFILE
	}
	os.MkdirAll(filepath.Dir(logFile), 0700)
	file, _ := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	multiOutput := io.MultiWriter(file, os.Stdout)
	backend := logging.NewLogBackend(multiOutput, "", 0)
	format := logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{shortfunc} > %{level:.4s} %{id:03x}%{color:reset} %{message}`)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	logging.SetBackend(backendFormatter)
	log.Infof("Logs can be accessed in %s", logFile)
}
