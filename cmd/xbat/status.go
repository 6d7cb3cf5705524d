package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/charlie0129/xbat/pkg/powerinfo"
)

type statusOptions struct {
	json    bool
	all     bool
	remote  bool
	details bool
}

func (o *statusOptions) addFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.json, "json", false, "print as JSON")
	fs.BoolVarP(&o.all, "all", "a", false, "print every battery instead of the primary one")
	fs.BoolVar(&o.remote, "remote", false, "ask the xbat daemon instead of reading the battery directly")
	fs.BoolVarP(&o.details, "details", "d", false, "also print the raw source data")
}

func (o *statusOptions) run(cmd *cobra.Command, _ []string) error {
	snap, err := takeSnapshot(cmd, o.remote)
	if err != nil {
		return err
	}

	infos := []powerinfo.BatteryInfo{snap.PrimaryInfo()}
	if o.all {
		infos = snap.AllInfos()
	}
	var details string
	if o.details {
		details = snap.Details()
	}

	w := cmd.OutOrStdout()
	if o.json {
		return printStatusJSON(w, infos, o.all, details)
	}

	for i, info := range infos {
		if o.all {
			fmt.Fprintln(w, bold("Battery #%d:", i))
		} else {
			fmt.Fprintln(w, bold("Battery status:"))
		}
		printInfo(w, info)
		fmt.Fprintln(w)
	}
	if o.all && len(infos) == 0 {
		fmt.Fprintln(w, "No battery found.")
	}
	if o.details {
		fmt.Fprintln(w, bold("Raw details:"))
		fmt.Fprintln(w, details)
	}
	return nil
}

func NewStatusCommand() *cobra.Command {
	o := &statusOptions{}
	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Print normalized battery information",
		Long: `Take one snapshot of the battery and print charge, health, power and time estimates.

Capacities are printed in the unit the platform reports them in (mAh or mWh).`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}
	o.addFlags(cmd.Flags())
	return cmd
}

func printInfo(w io.Writer, info powerinfo.BatteryInfo) {
	if !info.HasBattery {
		fmt.Fprintf(w, "  Battery: %s\n", bool2Text(false))
	}

	fmt.Fprintf(w, "  State: %s\n", stateText(info.ChargeStatus()))
	fmt.Fprintf(w, "  Current charge: %s\n", percentText(info.ChargePercentage))
	fmt.Fprintf(w, "  Health: %s\n", percentText(info.ChargeHealthPercentage))
	fmt.Fprintf(w, "  Charge rate: %s\n", rateText(info.ChargeRate))
	if info.Voltage != nil {
		fmt.Fprintf(w, "  Voltage: %s\n", bold("%.2f V", *info.Voltage/1000))
	}
	if info.Temperature != nil {
		fmt.Fprintf(w, "  Temperature: %s\n", bold("%.1f °C", *info.Temperature))
	}
	if info.TimeToChargeCompletion != nil {
		fmt.Fprintf(w, "  Time to full: %s\n", bold("%s", durationText(*info.TimeToChargeCompletion)))
	}
	if info.TimeToDischargeCompletion != nil {
		fmt.Fprintf(w, "  Time to empty: %s\n", bold("%s", durationText(*info.TimeToDischargeCompletion)))
	}
	fmt.Fprintf(w, "  Current capacity: %s\n", capacityText(info.CurrentChargeCapacity))
	fmt.Fprintf(w, "  Full capacity: %s\n", capacityText(info.MaxChargeCapacity))
	fmt.Fprintf(w, "  Design capacity: %s\n", capacityText(info.DesignChargeCapacity))
	fmt.Fprintf(w, "  Flags: %s\n", info.ChargingFlags)
}

func stateText(status string) string {
	switch status {
	case powerinfo.StatusCharging:
		return color.New(color.Bold, color.FgGreen).Sprint(status)
	case powerinfo.StatusDischarging:
		return color.New(color.Bold, color.FgRed).Sprint(status)
	}
	return bold("%s", status)
}

func percentText(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return bold("%.1f%%", *p)
}

// rateText shows watts with sign, + charging and - discharging.
func rateText(w *float64) string {
	if w == nil {
		return "n/a"
	}
	switch {
	case *w > 0:
		return color.New(color.Bold, color.FgGreen).Sprintf("%+.1f W", *w)
	case *w < 0:
		return color.New(color.Bold, color.FgRed).Sprintf("%+.1f W", *w)
	}
	return bold("%+.1f W", *w)
}

func capacityText(c *powerinfo.CapacityValue) string {
	if c == nil {
		return "n/a"
	}
	return bold("%.0f %s", c.Value, c.Unit)
}

// durationText renders seconds as "1h05m", rounded to the minute.
func durationText(sec float64) string {
	d := time.Duration(math.Round(sec/60)) * time.Minute
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
