package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
)

const timeLayout = "2006-01-02 15:04:05"

type (
	groupView struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	userView struct {
		ID        string     `json:"id"`
		Email     string     `json:"email"`
		Group     *groupView `json:"group,omitempty"`
		CreatedAt time.Time  `json:"createdAt"`
		UpdatedAt time.Time  `json:"updatedAt"`
	}

	checkView struct {
		Status    string `json:"status"`
		LatencyMs uint64 `json:"latencyMs"`
		Message   string `json:"message,omitempty"`
		Error     string `json:"error,omitempty"`
	}

	healthView struct {
		Status    string               `json:"status"`
		Version   string               `json:"version"`
		Timestamp time.Time            `json:"timestamp"`
		Checks    map[string]checkView `json:"checks"`
	}
)

func toGroupView(group *model.Group) *groupView {
	if group == nil {
		return nil
	}

	return &groupView{ID: group.ID.String(), Name: group.Name}
}

func toUserView(user *model.User) userView {
	return userView{
		ID:        user.ID.String(),
		Email:     user.Email,
		Group:     toGroupView(user.Group),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserViews(users []*model.User) []userView {
	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

func toHealthView(report *model.HealthReport) healthView {
	checks := make(map[string]checkView, len(report.Checks))
	for name, check := range report.Checks {
		checks[name] = checkView{
			Status:    string(check.Status),
			LatencyMs: check.LatencyMs,
			Message:   check.Message,
			Error:     check.Error,
		}
	}

	return healthView{
		Status:    string(report.Status),
		Version:   report.Version,
		Timestamp: report.Timestamp,
		Checks:    checks,
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func printUser(w io.Writer, user *model.User, asJSON bool) error {
	if asJSON {
		return printJSON(w, toUserView(user))
	}

	fmt.Fprintf(w, "ID:          %s\n", user.ID)
	fmt.Fprintf(w, "Email:       %s\n", user.Email)
	if user.Group != nil {
		fmt.Fprintf(w, "Group:       %s (%s)\n", user.Group.Name, user.Group.ID)
	}
	fmt.Fprintf(w, "Created At:  %s\n", user.CreatedAt.Format(timeLayout))
	_, err := fmt.Fprintf(w, "Updated At:  %s\n", user.UpdatedAt.Format(timeLayout))

	return err
}

func printUserTable(w io.Writer, users []*model.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tGROUP\tCREATED")

	for _, user := range users {
		group := "-"
		if user.Group != nil {
			group = user.Group.Name
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", user.ID, user.Email, group, user.CreatedAt.Format(timeLayout))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d user(s)\n", len(users))

	return err
}

func printHealthTable(w io.Writer, report *model.HealthReport) error {
	fmt.Fprintf(w, "Status:   %s\n", report.Status)
	fmt.Fprintf(w, "Version:  %s\n", report.Version)

	if len(report.Checks) == 0 {
		return nil
	}

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}
	slices.Sort(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nDEPENDENCY\tSTATUS\tLATENCY\tERROR")

	for _, name := range names {
		check := report.Checks[name]
		fmt.Fprintf(tw, "%s\t%s\t%dms\t%s\n", name, check.Status, check.LatencyMs, check.Error)
	}

	return tw.Flush()
}
