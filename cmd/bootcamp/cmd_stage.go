package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/client/stage"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

var (
	stageInteractive bool
	stageFields      = map[string]*string{}
	stageFiles       []string
	stageNodes       []string
)

var stageCmd = &cobra.Command{
	Use:   "stage [2-5]",
	Short: "Submit one of the timed stages",
	Long: `Starts the stage timer and submits the stage once its fields are filled.

Examples:
  bootcamp stage 2 --github https://github.com/ravens/app --hosted https://ravens.dev -f mock.png
  bootcamp stage 3 --figma https://figma.com/file/abc --description "Dashboard" -f flow.pdf
  bootcamp stage 4 --node "temp > 30=>open vent" --question "Cooling loop"
  bootcamp stage 5 --codename Falcon --abstract "..." -f deck.pdf
  bootcamp stage 3 -i`,
	Args: cobra.ExactArgs(1),
	RunE: runStage,
}

// stageFlags binds flag names to form field names.
var stageFlags = []struct {
	flag, field, usage string
}{
	{"github", "git_hub_link", "GitHub repository URL (stage 2)"},
	{"hosted", "hosted_link", "hosted application URL (stage 2)"},
	{"figma", "figma_links", "Figma source link (stage 3)"},
	{"description", "description", "design description (stage 3)"},
	{"question", "question", "logic question (stage 4)"},
	{"codename", "codename", "project codename (stage 5)"},
	{"abstract", "abstract", "technical abstract (stage 5)"},
}

// prompts are the interactive questions per stage, in order.
var prompts = map[int][]struct{ field, label string }{
	2: {{"git_hub_link", "GitHub repository URL"}, {"hosted_link", "Hosted link"}},
	3: {{"figma_links", "Figma source link"}, {"description", "Description"}},
	4: {{"question", "Question"}},
	5: {{"codename", "Project codename"}, {"abstract", "Technical abstract"}},
}

func init() {
	for _, f := range stageFlags {
		stageFields[f.field] = stageCmd.Flags().String(f.flag, "", f.usage)
	}
	stageCmd.Flags().StringArrayVarP(&stageFiles, "file", "f", nil, "file to upload (repeatable)")
	stageCmd.Flags().StringArrayVar(&stageNodes, "node", nil, `logic node as "condition=>action" (repeatable, stage 4)`)
	stageCmd.Flags().BoolVarP(&stageInteractive, "interactive", "i", false, "prompt for every field while the timer runs")
}

// parseNode splits "condition=>action".
func parseNode(raw string) domain.LogicNode {
	cond, action, _ := strings.Cut(raw, "=>")
	return domain.LogicNode{Condition: strings.TrimSpace(cond), Action: strings.TrimSpace(action)}
}

func runStage(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("stage must be a number: %w", err)
	}
	def, err := stage.ForStage(n, cfg.MaxFileBytes())
	if err != nil {
		return err
	}

	form := stage.Form{Fields: map[string]string{}}
	for field, v := range stageFields {
		if *v != "" {
			form.Fields[field] = *v
		}
	}
	for _, raw := range stageNodes {
		form.Nodes = append(form.Nodes, parseNode(raw))
	}

	clock := newStageTimer(n)
	clock.Start()
	defer clock.Stop()

	if stageInteractive {
		if err := promptStage(cmd.InOrStdin(), cmd.OutOrStdout(), n, &form); err != nil {
			return err
		}
	}
	for _, path := range stageFiles {
		u, err := stage.UploadFromPath(path)
		if err != nil {
			return err
		}
		form.Files = append(form.Files, u)
	}
	for _, u := range form.Files {
		console.Plain(fmt.Sprintf("  %s (%s)", u.Name, humanize.IBytes(uint64(u.Size))))
	}

	flow := stage.NewFlow(def, stage.Deps{
		API:           api,
		Clock:         clock,
		Control:       feedback.NewBusyControl("SUBMIT", "SUBMITTING..."),
		Notifier:      console,
		Marker:        console,
		Navigator:     leaderboardNavigator{out: cmd.OutOrStdout()},
		Session:       store,
		FallbackTeam:  cfg.Team.TestName,
		RedirectDelay: cfg.UI.RedirectDelay,
		Logger:        logger,
	})
	_, err = flow.Submit(cmd.Context(), form)
	return err
}

// promptStage asks for the stage's fields, then its files or logic nodes.
// Pre-filled flags are kept when the answer is blank.
func promptStage(in io.Reader, out io.Writer, n int, form *stage.Form) error {
	sc := bufio.NewScanner(in)
	ask := func(label string) (string, bool) {
		fmt.Fprintf(out, "%s: ", label)
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimSpace(sc.Text()), true
	}

	for _, p := range prompts[n] {
		v, ok := ask(p.label)
		if !ok {
			return sc.Err()
		}
		if v != "" {
			form.Fields[p.field] = v
		}
	}

	if n == 4 {
		fmt.Fprintln(out, `Logic nodes as "condition=>action", blank line to finish.`)
		for {
			v, ok := ask("node")
			if !ok || v == "" {
				return sc.Err()
			}
			form.Nodes = append(form.Nodes, parseNode(v))
		}
	}

	fmt.Fprintln(out, "Files to upload, one path per line, blank line to finish.")
	for {
		v, ok := ask("file")
		if !ok || v == "" {
			return sc.Err()
		}
		u, err := stage.UploadFromPath(v)
		if err != nil {
			console.Notify(feedback.Error, err.Error())
			continue
		}
		form.Files = append(form.Files, u)
	}
}
