package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/client/session"
	"gitlab.com/stark-bootcamp.net/internal/client/validation"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

var registerMembers []string

var registerCmd = &cobra.Command{
	Use:   "register [team-name]",
	Short: "Register a team and remember its name",
	Long: `Registers a team with the contest backend and stores the team name
for every later stage.

Members are given as name:role:email, e.g.
  bootcamp register ravens --member "Ada:lead:ada@example.com"`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the team name submissions are sent under",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), validation.ResolveTeamName(store, cfg.Team.TestName))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored team name",
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.Clear()
	},
}

func init() {
	registerCmd.Flags().StringArrayVarP(&registerMembers, "member", "m", nil, "team member as name:role:email (repeatable)")
}

// parseMember splits "name:role:email". Role and email may be omitted.
func parseMember(raw string) (domain.TeamMember, error) {
	parts := strings.SplitN(raw, ":", 3)
	m := domain.TeamMember{Name: strings.TrimSpace(parts[0])}
	if m.Name == "" {
		return m, fmt.Errorf("member %q has no name", raw)
	}
	if len(parts) > 1 {
		m.Role = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		m.Email = strings.TrimSpace(parts[2])
	}
	return m, nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	team := domain.Team{Name: strings.TrimSpace(args[0])}
	for _, raw := range registerMembers {
		m, err := parseMember(raw)
		if err != nil {
			return err
		}
		team.Members = append(team.Members, m)
	}

	body, err := json.Marshal(team)
	if err != nil {
		return err
	}
	info, err := api.PostJSON(cmd.Context(), "/register", body)
	if err != nil {
		console.Notify(feedback.Error, "Network error: "+err.Error())
		return err
	}
	if !info.OK() {
		msg := validation.ParseAPIError(info.Body, info.StatusCode)
		console.Notify(feedback.Error, msg)
		return fmt.Errorf("registration rejected: %s", msg)
	}

	if err := store.Set(session.KeyTeamName, team.Name); err != nil {
		return err
	}
	logger.Info("Team registered", "team", team.Name, "members", len(team.Members))
	console.Notify(feedback.Success, fmt.Sprintf("Team %s registered successfully", team.Name))
	return nil
}
