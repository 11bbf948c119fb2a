package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"

	"regexdfa/regexlib"
)

// validator rejects patterns that would not compile. A blank line and "exit"
// pass so the session can end.
func validator(opts regexlib.ParseOptions) promptui.ValidateFunc {
	return func(input string) error {
		input = strings.TrimSpace(input)
		if input == "" || input == "exit" {
			return nil
		}
		b := regexlib.NFABuilder{Options: opts}
		_, err := b.Build(input)
		return err
	}
}

func runInteractive(w io.Writer, out *output, opts regexlib.ParseOptions) error {
	for {
		prompt := promptui.Prompt{
			Label:    "pattern (blank or 'exit' to quit)",
			Validate: validator(opts),
		}
		input, err := prompt.Run()
		if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "prompt")
		}
		input = strings.TrimSpace(input)
		if input == "" || input == "exit" {
			return nil
		}

		res, err := regexlib.CompileWith(input, opts)
		if err != nil {
			fmt.Fprintln(w, promptui.Styler(promptui.FGRed)("error: "+err.Error()))
			continue
		}
		if err := out.print(w, res); err != nil {
			return err
		}
		fmt.Fprintln(w, promptui.Styler(promptui.FGCyan)(
			fmt.Sprintf("%d NFA states, %d DFA states, %d after minimization",
				res.NFA.NumStates(), res.DFA.NumStates(), res.MinDFA.NumStates())))
	}
}
