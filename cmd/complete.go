package cmd

import (
	"flag"

	"github.com/etnz/peerfunds/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// spreadsheets predicts the files pft can read and write.
var spreadsheets = predict.Or(predict.Files("*.xlsx"), predict.Files("*.csv"))

// Complete runs the shell completion for the pft binary called name.
// It exits the process when invoked by the shell, and does nothing otherwise.
func Complete(name string) {
	complete.Complete(name, Completion())
}

// Completion returns the completion tree of pft: global flags, subcommands with
// their flags, and the documentation topics.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	var names []string
	for _, cmds := range Commands {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(fs)}
			names = append(names, c.Name())
		}
	}
	for _, builtin := range []string{"help", "flags", "commands"} {
		root.Sub[builtin] = &complete.Command{Args: predict.Set(names)}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	return root
}

// flagPredictors maps each flag of fs to its predictor.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	preds := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		preds[f.Name] = flagPredictor(f)
	})
	return preds
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "config":
		return predict.Files("*.yaml")
	case "a", "b", "registry", "export", "profiles", "tracked", "pf", "o":
		return spreadsheets
	}
	return predict.Something
}
