package guard

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/stats"
)

func (g *Guard) writeTables(channels []collector.ChannelStat, streams []collector.StreamStat) {
	if len(channels) > 0 {
		fmt.Fprintln(g.out, "Channels")
		table := tablewriter.NewWriter(g.out)
		table.SetHeader([]string{"Channel", "Type", "State", "Sent", "Received", "Queue", "Mem"})
		for _, c := range channels {
			table.Append([]string{
				c.Label,
				c.ChannelType,
				c.State,
				fmt.Sprintf("%d", c.SentCount),
				fmt.Sprintf("%d", c.ReceivedCount),
				queueCell(c),
				stats.FormatBytes(c.QueuedBytes),
			})
		}
		table.Render()
	}

	if len(streams) > 0 {
		fmt.Fprintln(g.out, "Streams")
		table := tablewriter.NewWriter(g.out)
		table.SetHeader([]string{"Stream", "State", "Yielded", "Type"})
		for _, s := range streams {
			table.Append([]string{s.Label, s.State, fmt.Sprintf("%d", s.ItemsYielded), s.TypeName})
		}
		table.Render()
	}
}

// queueCell renders "[queued/cap]" colored green/yellow/red by ratio, or
// "N/A" for Unbounded channels. The dashboard's Queue column shows the same
// "[queued/cap]" text without ratio coloring.
func queueCell(c collector.ChannelStat) string {
	typ, err := stats.ParseChannelType(c.ChannelType)
	if err != nil || typ.Variant != stats.VariantBounded || typ.Capacity == 0 {
		return "N/A"
	}
	cell := fmt.Sprintf("[%d/%d]", c.Queued, typ.Capacity)
	ratio := float64(c.Queued) / float64(typ.Capacity)
	switch {
	case ratio >= 1:
		return color.RedString(cell)
	case ratio >= 0.5:
		return color.YellowString(cell)
	default:
		return color.GreenString(cell)
	}
}
