package session

import "github.com/nibzard/todo-go/internal/utils"

// Command is a menu entry, numbered as the user types it.
type Command int

const (
	CmdAdd Command = iota + 1
	CmdPending
	CmdPast
	CmdToday
	CmdWeek
	CmdMonth
	CmdComplete
	CmdExit
	CmdAll
)

// MenuTitle heads the menu.
const MenuTitle = "To-Do List Menu"

// MenuItem is one line of the menu.
type MenuItem struct {
	Command Command
	Label   string
}

var menu = []MenuItem{
	{CmdAdd, "Add a new to-do item"},
	{CmdPending, "View pending to-dos"},
	{CmdPast, "View past to-dos"},
	{CmdToday, "View today's to-dos"},
	{CmdWeek, "View this week's to-dos"},
	{CmdMonth, "View this month's to-dos"},
	{CmdComplete, "Mark a to-do as done"},
	{CmdExit, "Exit"},
	{CmdAll, "View all to-dos"},
}

// Menu returns the menu entries in display order.
func Menu() []MenuItem {
	out := make([]MenuItem, len(menu))
	copy(out, menu)
	return out
}

// ParseCommand maps typed input to a command.
func ParseCommand(input string) (Command, bool) {
	n, ok := utils.ParseChoice(input)
	if !ok || n < int(CmdAdd) || n > int(CmdAll) {
		return 0, false
	}
	return Command(n), true
}
