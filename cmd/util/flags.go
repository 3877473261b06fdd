package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/lpsd/remodel/site"
)

var (
	FlagVerbose = false

	FlagSettings = ""
	Settings     = site.Default
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, progress and skipped inputs are reported on stderr.")
		},
	},
	"settings": {
		set: func() {
			flag.StringVar(&FlagSettings, "settings", FlagSettings,
				"A YAML file with the site settings: paths and arguments of\n"+
					"the external programs. Built in defaults are used when empty.")
		},
		init: initSettings,
	},
}

// initSettings loads -settings, when given, and carries -verbose over to the
// external programs.
func initSettings() {
	if len(FlagSettings) > 0 {
		var err error
		Settings, err = site.Load(FlagSettings)
		Assert(err, "Could not load site settings '%s'", FlagSettings)
	}
	if FlagVerbose {
		Settings.Verbose = true
	}
}

// FlagUse registers the named common flags. It must be called before
// FlagParse.
func FlagUse(names ...string) {
	for _, name := range names {
		fl, ok := commonFlags[name]
		if !ok {
			panic(fmt.Sprintf("unknown common flag '%s'", name))
		}
		fl.use = true
	}
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`.
func Arg(i int) string {
	return flag.Arg(i)
}

// NArg just calls `flag.NArg`.
func NArg() int {
	return flag.NArg()
}

// Args just calls `flag.Args`.
func Args() []string {
	return flag.Args()
}

// FlagParse sets up the usage message, parses the command line and then
// initializes the common flags in use.
func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
