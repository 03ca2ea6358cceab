package commands

import (
	"fmt"
	"strings"

	"github.com/Dosada05/scrim-tournaments/services"
	"github.com/urfave/cli/v2"
)

var (
	templateCreateFlags = []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "template name"},
		&cli.IntFlag{Name: "kp", Usage: "points per kill"},
		&cli.StringFlag{Name: "pp", Usage: "placement points, e.g. 10,5,0"},
		&cli.IntFlag{Name: "size", Usage: "players per team"},
	}
	tournamentCreateFlags = []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "tournament name"},
		&cli.StringFlag{Name: "template", Usage: "template name or id"},
		&cli.IntFlag{Name: "matches", Usage: "number of matches"},
	}
	registerFlags = []cli.Flag{
		&cli.StringFlag{Name: "team", Usage: "team name"},
	}
	submitFlags = []cli.Flag{
		&cli.IntFlag{Name: "match", Usage: "match number"},
		&cli.IntFlag{Name: "rank", Usage: "final placement"},
		&cli.IntFlag{Name: "kills", Usage: "team kills"},
		&cli.StringFlag{Name: "proof", Usage: "screenshot URL"},
	}
)

type templateCreateArgs struct {
	Name            string
	KillPoints      int
	PlacementPoints []int
	TeamSize        int
}

type tournamentCreateArgs struct {
	Name        string
	TemplateRef string
	MatchCount  int
}

type registerArgs struct {
	TeamName string
}

type submitArgs struct {
	MatchNumber int
	Rank        int
	Kills       int
	ProofRef    string
}

// requireFlags проверяет, что все перечисленные флаги заданы.
func requireFlags(c *cli.Context, command string, names ...string) error {
	var missing []string
	for _, name := range names {
		if !c.IsSet(name) {
			missing = append(missing, "--"+name)
			continue
		}
		if v, ok := c.Value(name).(string); ok && strings.TrimSpace(v) == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return &usageError{command: command, err: fmt.Errorf("missing %s", strings.Join(missing, ", "))}
	}
	return nil
}

func parseTemplateCreate(c *cli.Context) (templateCreateArgs, error) {
	if err := requireFlags(c, "template create", "name", "kp", "pp", "size"); err != nil {
		return templateCreateArgs{}, err
	}
	points, err := services.ParsePlacementPoints(c.String("pp"))
	if err != nil {
		return templateCreateArgs{}, err
	}
	return templateCreateArgs{
		Name:            strings.TrimSpace(c.String("name")),
		KillPoints:      c.Int("kp"),
		PlacementPoints: points,
		TeamSize:        c.Int("size"),
	}, nil
}

func parseTournamentCreate(c *cli.Context) (tournamentCreateArgs, error) {
	if err := requireFlags(c, "tournament create", "name", "template", "matches"); err != nil {
		return tournamentCreateArgs{}, err
	}
	return tournamentCreateArgs{
		Name:        strings.TrimSpace(c.String("name")),
		TemplateRef: strings.TrimSpace(c.String("template")),
		MatchCount:  c.Int("matches"),
	}, nil
}

func parseRegister(c *cli.Context) (registerArgs, error) {
	if err := requireFlags(c, "register", "team"); err != nil {
		return registerArgs{}, err
	}
	return registerArgs{TeamName: strings.TrimSpace(c.String("team"))}, nil
}

func parseSubmit(c *cli.Context) (submitArgs, error) {
	if err := requireFlags(c, "submit", "match", "rank", "kills", "proof"); err != nil {
		return submitArgs{}, err
	}
	return submitArgs{
		MatchNumber: c.Int("match"),
		Rank:        c.Int("rank"),
		Kills:       c.Int("kills"),
		ProofRef:    strings.TrimSpace(c.String("proof")),
	}, nil
}
