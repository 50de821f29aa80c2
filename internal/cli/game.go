package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/config"
	"github.com/matzehuels/mindtower/pkg/diagram"
	"github.com/matzehuels/mindtower/pkg/game"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/observability"
	"github.com/matzehuels/mindtower/pkg/score"
)

// defaultPlayer is the user ID of local games.
const defaultPlayer = "local"

// gameCommand groups the mind map library and game session commands.
func (c *CLI) gameCommand() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "game",
		Short: "Import mind maps and play reconstruction games",
		Long: `Import mind maps and play reconstruction games.

A game shuffles the nodes of a stored mind map over an 800×600 board and
hides its edges. The player reconnects the nodes and submits the edges; the
score is the percentage of original connections recovered.

Games use the configured store. The memory backend does not outlive a
command, so local play falls back to the file store under the data dir.`,
	}
	cmd.PersistentFlags().StringVarP(&user, "user", "u", defaultPlayer, "player ID")

	cmd.AddCommand(c.gameImportCommand(&user))
	cmd.AddCommand(c.gameMapsCommand(&user))
	cmd.AddCommand(c.gameNewCommand(&user))
	cmd.AddCommand(c.gameSubmitCommand(&user))
	cmd.AddCommand(c.gameListCommand(&user))

	return cmd
}

// openGame opens the configured backends and a game service over them.
func (c *CLI) openGame(ctx context.Context) (*game.Service, *backends, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	storeCfg := cfg.Store
	if storeCfg.Backend == config.BackendMemory {
		c.Logger.Debug("memory store does not persist, using file store", "dir", storeCfg.Dir)
		storeCfg.Backend = config.BackendFile
	}
	observability.NewLogHooks(c.Logger).Register()

	b, err := openBackends(withLogger(ctx, c.Logger), storeCfg)
	if err != nil {
		return nil, nil, err
	}
	return game.NewService(b.Sessions, b.Maps, game.WithLogger(c.Logger)), b, nil
}

func (c *CLI) gameImportCommand(user *string) *cobra.Command {
	var (
		id     string
		title  string
		shared bool
	)

	cmd := &cobra.Command{
		Use:   "import [graph.json]",
		Short: "Store a mind map in the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.readGraph(args[0])
			if err != nil {
				return err
			}
			_, b, err := c.openGame(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close(cmd.Context())

			if id == "" {
				id = filepath.Base(basePath("", args[0]))
			}
			if title == "" {
				title = id
			}
			m := &graph.MindMap{ID: id, Title: title, Nodes: g.Nodes, Edges: g.Edges}
			if !shared {
				m.UserID = *user
			}
			if err := b.Maps.Put(cmd.Context(), m); err != nil {
				return err
			}

			printSuccess("Imported %s", StyleHighlight.Render(m.ID))
			printStats(len(m.Nodes), len(m.Edges), "")
			printNewline()
			printNextStep("Play", appName+" game new "+m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "mind map ID (default: input file name)")
	cmd.Flags().StringVar(&title, "title", "", "mind map title (default: the ID)")
	cmd.Flags().BoolVar(&shared, "shared", false, "make the map playable by every user")

	return cmd
}

func (c *CLI) gameMapsCommand(user *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "maps",
		Short: "List your mind maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := c.openGame(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close(cmd.Context())

			maps, err := b.Maps.List(cmd.Context(), *user, limit)
			if err != nil {
				return err
			}
			t := newTable("ID", "Title", "Nodes", "Edges", "Updated")
			for _, m := range maps {
				t.Row(m.ID, m.Title, fmt.Sprint(len(m.Nodes)), fmt.Sprint(len(m.Edges)), m.UpdatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Fprintln(uiOut, t.Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of maps (default 50)")

	return cmd
}

func (c *CLI) gameNewCommand(user *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new [mind-map-id]",
		Short: "Start a game and write its shuffled board",
		Long: `Start a game and write its shuffled board.

The board is a graph document with every node placed at random and no
edges. Connect the nodes by adding edges to it, then pass the file to
'game submit'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, b, err := c.openGame(ctx)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			sess, err := svc.Create(ctx, *user, args[0])
			if err != nil {
				return err
			}
			m, err := svc.Board(ctx, sess.ID, *user)
			if err != nil {
				return err
			}

			ctl := diagram.New(m.Graph(), diagram.ModeGame, diagram.WithLogger(c.Logger), diagram.WithContext(ctx))
			if err := ctl.Shuffle(game.BoardSeed(sess.ID)); err != nil {
				return err
			}
			ctl.MeasureAll()

			if output == "" {
				output = sess.ID + ".board.json"
			}
			data, err := graph.MarshalGraph(ctl.Graph())
			if err != nil {
				return err
			}
			if err := c.writeOutput(output, data); err != nil {
				return err
			}

			printSuccess("Started game %s", StyleHighlight.Render(sess.ID))
			printKeyValue("mind map", m.Title)
			printKeyValue("nodes", fmt.Sprint(len(m.Nodes)))
			if output != stdinPath {
				printFile(output)
			}
			printNewline()
			printNextStep("Submit", appName+" game submit "+sess.ID+" "+output+" --elapsed <seconds>")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "board file (default: <session>.board.json)")

	return cmd
}

func (c *CLI) gameSubmitCommand(user *string) *cobra.Command {
	var (
		elapsed int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "submit [session-id] [board.json]",
		Short: "Submit the edges of a board and score the game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			board, err := c.readGraph(args[1])
			if err != nil {
				return err
			}
			svc, b, err := c.openGame(ctx)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			sess, report, err := svc.Complete(ctx, args[0], *user, graphEdges(board), elapsed)
			if err != nil {
				return err
			}
			if asJSON {
				return c.printJSON(struct {
					*game.Session
					Report score.Report `json:"report"`
				}{sess, report})
			}
			printReport(report)
			printKeyValue("time", sess.Elapsed().String())
			return nil
		},
	}

	cmd.Flags().IntVar(&elapsed, "elapsed", 0, "play time in seconds")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a summary")

	return cmd
}

func (c *CLI) gameListCommand(user *string) *cobra.Command {
	var (
		mindMapID string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, b, err := c.openGame(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close(cmd.Context())

			sessions, err := svc.List(cmd.Context(), *user, mindMapID, limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				printWarning("No games yet")
				return nil
			}
			printSessions(sessions)
			return nil
		},
	}

	cmd.Flags().StringVar(&mindMapID, "map", "", "only games on this mind map")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of games (default 50)")

	return cmd
}
