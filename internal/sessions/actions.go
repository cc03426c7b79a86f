// Package sessions implements the persisted-session commands: listing past
// analysis runs and re-rendering their reports without a fresh crawl.
package sessions

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"seolens/internal/common"
	"seolens/pkg/report"
	"seolens/pkg/store"
)

func ListAction(c *cli.Context) error {
	db, err := store.Open(dbPath(c))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	sessions, err := db.ListSessions(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-30s %-7s %-8s %-8s %-8s\n",
		"ID", "Created", "Domain", "Pages", "Avg", "Min", "Max")
	fmt.Println(strings.Repeat("-", 92))
	for _, s := range sessions {
		fmt.Printf("%-6d %-20s %-30s %-7d %-8.1f %-8.0f %-8.0f\n",
			s.SessionID,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.Domain,
			s.PageCount,
			s.AvgScore,
			s.MinScore,
			s.MaxScore,
		)
	}
	fmt.Printf("\nTotal: %d sessions\n", len(sessions))
	fmt.Printf("\nTip: Use 'seolens sessions show <id>' to re-render a report\n")
	return nil
}

func ShowAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	if c.NArg() < 1 {
		return fmt.Errorf("usage: seolens sessions show <id>")
	}
	sessionID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session ID: %s", c.Args().First())
	}

	db, err := store.Open(dbPath(c))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	sess, digest, err := db.GetSession(sessionID)
	if err != nil {
		return err
	}
	logger.Info("session loaded",
		"session_id", sess.SessionID, "domain", sess.Domain, "pages", sess.PageCount)

	if c.Bool("json") {
		data, err := json.MarshalIndent(digest, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode digest: %w", err)
		}
		return common.WriteOutput(c, string(data)+"\n")
	}
	return common.WriteOutput(c, report.Generate(digest, nil, logger))
}

func dbPath(c *cli.Context) string {
	if path := c.String("db"); path != "" {
		return path
	}
	return store.DefaultDBName
}
