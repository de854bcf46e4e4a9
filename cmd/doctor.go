/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/graph"
	"github.com/josephgoksu/gantry/internal/ui"
	"github.com/josephgoksu/gantry/store"
)

var (
	doctorFix       bool
	doctorFixType   string
	doctorFixItem   string
	doctorDryRun    bool
	doctorYes       bool
	doctorListTypes bool
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the item graph and fix issues",
	Long: `Check the health of the item graph and fix issues.

Checks:
  • Dangling references (relation targets that do not exist)
  • Incomplete chains (REQUIRES/BLOCKS or ANYOF/SUFFICIENT pairs
    missing their inverse side)

Without flags the findings are reported with a suggested fix per issue.
With --fix the fixes are applied and the graph is saved; narrow the
selection with --type or --item, or preview it with --dry-run.

Examples:
  gantry doctor
  gantry doctor --fix --type dangling_reference
  gantry doctor --fix --item write_report --dry-run`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Apply the suggested fixes and save")
	doctorCmd.Flags().StringVarP(&doctorFixType, "type", "t", "", "Only fix issues of this type")
	doctorCmd.Flags().StringVarP(&doctorFixItem, "item", "i", "", "Only fix issues for this item id")
	doctorCmd.Flags().BoolVar(&doctorDryRun, "dry-run", false, "Show what would be fixed without making changes")
	doctorCmd.Flags().BoolVarP(&doctorYes, "yes", "y", false, "Skip the confirmation prompt")
	doctorCmd.Flags().BoolVar(&doctorListTypes, "list-types", false, "List the issue types doctor can fix")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	if doctorListTypes {
		cmd.Println("Available issue types:")
		for _, t := range graph.AllIssueTypes {
			cmd.Printf("  • %s\n", t)
		}
		return nil
	}

	repo, ws, err := openRepository()
	if err != nil {
		return err
	}

	// The lock spans load through save so fixes apply to fresh state.
	if doctorFix && !doctorDryRun {
		unlock, err := lockWorkspace(ws)
		if err != nil {
			return err
		}
		defer unlock()
	}

	g, err := repo.Load()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	doc := graph.NewDoctor(g)
	issues := doc.FullDiagnosis()
	graph.SortIssues(issues)

	if !doctorFix {
		return reportIssues(cmd, issues)
	}
	return fixIssues(cmd, repo, g, doc, issues)
}

func reportIssues(cmd *cobra.Command, issues []graph.Issue) error {
	if isJSON() {
		return printJSON(cmd, newIssueResponses(issues))
	}
	if len(issues) == 0 {
		cmd.Println(ui.StyleSuccess.Render("✓ Graph is healthy!"))
		return nil
	}

	header := fmt.Sprintf("Found %d issue%s:", len(issues), pluralSuffix(len(issues)))
	cmd.Printf("\n%s\n", ui.StyleWarning.Render(header))
	for _, t := range graph.AllIssueTypes {
		var grouped []graph.Issue
		for _, issue := range issues {
			if issue.Type == t {
				grouped = append(grouped, issue)
			}
		}
		if len(grouped) == 0 {
			continue
		}
		cmd.Printf("\n%s (%d issues):\n", t, len(grouped))
		for _, issue := range grouped {
			cmd.Printf("  • %s: %s\n", issue.ItemID, issue.Message)
			if issue.SuggestedFix != "" {
				cmd.Printf("    Suggested fix: %s\n", issue.SuggestedFix)
			}
		}
	}
	return nil
}

func fixIssues(cmd *cobra.Command, repo *store.Repository, g *graph.Graph, doc *graph.Doctor, issues []graph.Issue) error {
	if len(issues) == 0 {
		cmd.Println(ui.StyleSuccess.Render("✓ Graph is healthy! No issues to fix."))
		return nil
	}

	var issueType graph.IssueType
	if doctorFixType != "" {
		var err error
		issueType, err = graph.ParseIssueType(doctorFixType)
		if err != nil {
			var names []string
			for _, t := range graph.AllIssueTypes {
				names = append(names, string(t))
			}
			return fmt.Errorf("invalid issue type %q (valid types: %s)", doctorFixType, strings.Join(names, ", "))
		}
	}

	var candidates []graph.Issue
	for _, issue := range issues {
		if issueType != "" && issue.Type != issueType {
			continue
		}
		if doctorFixItem != "" && issue.ItemID != doctorFixItem {
			continue
		}
		candidates = append(candidates, issue)
	}
	if len(candidates) == 0 {
		if doctorFixType != "" {
			cmd.Printf("No issues of type '%s' found.\n", doctorFixType)
		} else {
			cmd.Printf("No issues found for item '%s'.\n", doctorFixItem)
		}
		return nil
	}

	header := fmt.Sprintf("Found %d issue%s that can be fixed:", len(candidates), pluralSuffix(len(candidates)))
	cmd.Printf("\n%s\n", ui.StyleWarning.Render(header))
	for _, issue := range candidates {
		cmd.Printf("  • %s: %s\n", issue.ItemID, issue.Message)
		if issue.SuggestedFix != "" {
			cmd.Printf("    Suggested fix: %s\n", issue.SuggestedFix)
		}
	}

	if doctorDryRun {
		cmd.Println("\nDry run - no changes made.")
		return nil
	}
	if !doctorYes && !confirm("Do you want to fix these issues") {
		cmd.Println("Aborted. No changes made.")
		return nil
	}

	fixed := doc.Fix(issueType, doctorFixItem)
	if len(fixed) == 0 {
		cmd.Println("\nNo issues were fixed. Some issues may require manual intervention.")
		return nil
	}
	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	header = fmt.Sprintf("Successfully fixed %d issue%s:", len(fixed), pluralSuffix(len(fixed)))
	cmd.Printf("\n%s\n", ui.StyleSuccess.Render(header))
	for _, issue := range fixed {
		cmd.Printf("  • %s: %s\n", issue.ItemID, issue.Message)
	}
	return nil
}

func newIssueResponses(issues []graph.Issue) []issueResponse {
	out := make([]issueResponse, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issueResponse{
			Type:         string(issue.Type),
			ItemID:       issue.ItemID,
			Message:      issue.Message,
			RelatedIDs:   issue.RelatedIDs,
			SuggestedFix: issue.SuggestedFix,
		})
	}
	return out
}
