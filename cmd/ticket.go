package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bridges/internal/ticket"
)

var (
	ticketFirstRow int
	ticketLastRow  int
)

var ticketCmd = &cobra.Command{
	Use:   "ticket <ticket> [other-ticket]",
	Short: "Decode and validate an airline ticket",
	Long: `Decodes a ticket of the form YYYYMMDDDEPARRRRS[FFFF] and checks its date,
seat and frequent-flyer number. Given a second ticket, also reports whether
the two connect and how their seats relate.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := ticket.Parse(strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		renderTicket(t)

		if len(args) == 1 {
			return nil
		}
		other, err := ticket.Parse(strings.TrimSpace(args[1]))
		if err != nil {
			return err
		}
		fmt.Println()
		renderTicket(other)

		fmt.Println()
		fmt.Printf("Connecting        : %s\n", yesNo(ticket.Connecting(t, other)))
		adjacent, err := ticket.Adjacent(t, other)
		switch {
		case errors.Is(err, ticket.ErrSameSeat):
			fmt.Println("Adjacent          : same seat booked twice")
		case err != nil:
			return err
		default:
			fmt.Printf("Adjacent          : %s\n", yesNo(adjacent))
		}
		fmt.Printf("Behind            : %s\n", yesNo(ticket.Behind(t, other)))
		return nil
	},
}

func renderTicket(t ticket.Ticket) {
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Ticket            : %s\n", t)
	fmt.Printf("Date              : %04d-%02d-%02d%s\n", t.Year, t.Month, t.Day, invalidTag(t.ValidDate()))
	fmt.Printf("Route             : %s -> %s\n", t.Departure, t.Arrival)
	fmt.Printf("Seat              : %02d%c %s%s\n", t.Row, t.Seat, t.SeatType(), invalidTag(t.ValidSeat(ticketFirstRow, ticketLastRow)))
	if t.FFN != "" {
		fmt.Printf("Frequent Flyer    : %s%s\n", t.FFN, invalidTag(t.ValidFFN()))
	}
	fmt.Println(strings.Repeat("-", 80))
}

func invalidTag(valid bool) string {
	if valid {
		return ""
	}
	return " " + colorRed + "[invalid]" + colorReset
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	ticketCmd.Flags().IntVar(&ticketFirstRow, "first-row", 1, "First valid seat row")
	ticketCmd.Flags().IntVar(&ticketLastRow, "last-row", 30, "Last valid seat row")
	rootCmd.AddCommand(ticketCmd)
}
