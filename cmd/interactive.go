package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

const pageSize = 20

// showList prints lines and, when stdin is a terminal, lets the user browse
// them with the arrow keys and open one with Enter. ids[i] belongs to
// lines[i]; show renders the chosen id.
func showList(ids []int, lines []string, show func(id int)) {
	for _, l := range lines {
		fmt.Println(l)
	}
	if len(ids) == 0 || !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Println("Use ↑/↓ and Enter for details, Esc to exit.")
	interactiveSelect(ids, lines, show)
}

// interactiveSelect presents lines in pages of pageSize. ↑/↓ move within a
// page, ←/→ change pages, Enter shows details, Esc quits.
func interactiveSelect(ids []int, lines []string, show func(id int)) {
	if len(ids) == 0 {
		return
	}

	if runtime.GOOS == "windows" {
		enableVT()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println("(interactive selection not supported on this terminal)")
		return
	}
	defer func() { term.Restore(fd, oldState) }()

	reader := bufio.NewReader(os.Stdin)
	page, selected := 0, 0
	totalPages := (len(ids) + pageSize - 1) / pageSize

	pageLen := func() int {
		return min(pageSize, len(ids)-page*pageSize)
	}

	redraw := func() {
		// Clear screen (ANSI reset to top + clear screen)
		fmt.Print("\033[H\033[2J")
		start := page * pageSize
		for i := start; i < start+pageLen(); i++ {
			prefix := "  "
			if i-start == selected {
				prefix = "> "
			}
			fmt.Print(prefix + lines[i] + "\r\n")
		}
		fmt.Printf("(↑/↓ navigate, ←/→ page, Enter details, Esc quit)  Page %d/%d\r\n", page+1, totalPages)
	}

	up := func() {
		if selected > 0 {
			selected--
			redraw()
		}
	}
	down := func() {
		if selected < pageLen()-1 {
			selected++
			redraw()
		}
	}
	left := func() {
		if page > 0 {
			page--
			selected = 0
			redraw()
		}
	}
	right := func() {
		if page < totalPages-1 {
			page++
			selected = 0
			redraw()
		}
	}
	enter := func() bool {
		// restore cooked mode before rendering details
		term.Restore(fd, oldState)
		fmt.Println()
		show(ids[page*pageSize+selected])

		fmt.Print("\n(press Enter to return)")
		_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

		oldState, err = term.MakeRaw(fd)
		if err != nil {
			return false
		}
		if runtime.GOOS == "windows" {
			enableVT()
		}
		reader = bufio.NewReader(os.Stdin)
		redraw()
		return true
	}

	redraw()

	for {
		b1, err := reader.ReadByte()
		if err != nil {
			return
		}

		// Windows console arrow sequences (0 or 224, then code)
		if b1 == 0 || b1 == 224 {
			b2, _ := reader.ReadByte()
			switch b2 {
			case 72:
				up()
			case 80:
				down()
			case 75:
				left()
			case 77:
				right()
			}
			continue
		}

		switch b1 {
		case 27: // ESC or ANSI sequence
			if reader.Buffered() == 0 {
				fmt.Print("\r\n")
				return
			}
			b2, _ := reader.ReadByte()
			if b2 != '[' || reader.Buffered() == 0 {
				continue
			}
			b3, _ := reader.ReadByte()
			switch b3 {
			case 'A':
				up()
			case 'B':
				down()
			case 'D':
				left()
			case 'C':
				right()
			}
		case '\r', '\n':
			if !enter() {
				return
			}
		case 3: // Ctrl-C
			fmt.Print("\r\n")
			return
		}
	}
}
