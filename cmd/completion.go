package cmd

import (
	"flag"

	"github.com/etnz/t212/date"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of the flags whose values are known.
var predictors = map[string]complete.Predictor{
	"config":      predict.Files("*.yaml"),
	"orders-file": predict.Files("*.json*"),
	"o":           predict.Files("*"),
	"source":      predict.Set{SourceAPI, SourceFile, SourceSample},
	"format":      predict.Set{"markdown", "text", "json"},
	"f":           predict.Set{"csv", "json"},
	"price":       predict.Set{"first", "mean"},
	"status":      predict.Set{"FILLED", "CANCELLED"},
}

func init() {
	var periods predict.Set
	for _, p := range date.Periods() {
		periods = append(periods, p.Noun())
	}
	predictors["p"] = periods
}

// flagPredictors returns the predictors of every flag defined in fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[f.Name]; ok {
			res[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			res[f.Name] = predict.Nothing
			return
		}
		res[f.Name] = predict.Something
	})
	return res
}

// Completion returns the shell completion tree of the subcommands, with the
// global flags of global.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(fs)}
		}
	}
	return root
}

// IsCommand reports whether name is a builtin subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}
