/*
main.go - Command-line date calculator

PURPOSE:
  Evaluates a typed key sequence once, or opens the terminal keypad.

COMMAND-LINE FLAGS:
  -e       Key sequence to evaluate, e.g. "2024-01-01 - 1990-01-01 = d"
  -json    Print the full view as JSON instead of the active value
  -today   Pretend today is YYYY-MM-DD (relative hints, shortcuts)

EXAMPLES:
  datecalc -e "2020-05-31 + 1917d ="        # 2025-08-30
  datecalc -e "2026-03-15 - 2019-11-22 = m" # 75m 21d
  datecalc                                  # interactive keypad

SEE ALSO:
  - keypad/keys.go: key tokens
  - tui/tui.go: interactive keypad
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/warp/datecalc/calc"
	"github.com/warp/datecalc/config"
	"github.com/warp/datecalc/keypad"
	"github.com/warp/datecalc/logging"
	"github.com/warp/datecalc/tui"
)

func main() {
	expr := flag.String("e", "", "key sequence to evaluate")
	asJSON := flag.Bool("json", false, "print the view as JSON")
	today := flag.String("today", "", "override today's date (YYYY-MM-DD)")
	flag.Parse()

	log, err := logging.New(config.LoggerConfig{Level: "warn", Encoding: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var clock calc.Clock = calc.RealClock{}
	if *today != "" {
		t, err := time.Parse(calc.DateLayout, *today)
		if err != nil {
			log.Fatal("invalid -today", zap.String("value", *today), zap.Error(err))
		}
		clock = calc.FixedClock(t)
	}

	if *expr == "" {
		if err := tui.Run(clock); err != nil {
			log.Fatal("keypad failed", zap.Error(err))
		}
		return
	}

	v := keypad.Project(keypad.Run(keypad.SplitKeys(*expr)...), clock)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toJSON(v)); err != nil {
			log.Fatal("encode view", zap.Error(err))
		}
		return
	}

	fmt.Println(activeText(v))
}

// activeText is what the keypad shows in its main display.
func activeText(v keypad.View) string {
	if v.Output != nil {
		return v.Output.DisplayText()
	}
	if v.Display != "" {
		return v.Display
	}
	return "0"
}

type viewJSON struct {
	Mode       keypad.Mode       `json:"mode"`
	Display    string            `json:"display"`
	Output     *calc.ValueRecord `json:"output,omitempty"`
	Active     *calc.ValueRecord `json:"active,omitempty"`
	InputMode  keypad.InputMode  `json:"input_mode"`
	Info       *keypad.Info      `json:"info,omitempty"`
	Expression string            `json:"expression,omitempty"`
}

func toJSON(v keypad.View) viewJSON {
	out := viewJSON{
		Mode:      v.Mode,
		Display:   v.Display,
		Output:    calc.EncodeValue(v.Output),
		Active:    calc.EncodeValue(v.DisplayValue),
		InputMode: v.InputMode,
		Info:      v.Info,
	}
	if e := v.Expression; e != nil {
		out.Expression = e.Left.DisplayText() + " " + string(e.Operator)
		if e.Right != nil {
			out.Expression += " " + e.Right.DisplayText()
		}
	}
	return out
}
