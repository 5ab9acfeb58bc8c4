package cmd

import "github.com/google/subcommands"

// Commands are the subcommands of the dashboard, by group.
var Commands = map[string][]subcommands.Command{
	"reports": {
		&overviewCmd{},
		&summaryCmd{},
		&holdingsCmd{},
		&activityCmd{},
		&cumulativeCmd{},
		&stockCmd{},
		&ordersCmd{},
	},
	"data": {
		&fetchCmd{},
		&exportCmd{},
		&queryCmd{},
	},
	"server": {
		&serveCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}
