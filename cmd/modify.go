/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/gantry/models"
)

// modifyCmd represents the modify command
var modifyCmd = &cobra.Command{
	Use:   "modify <query>",
	Short: "Modify properties of an item",
	Long: `Modify properties of the item matching the query.

Scalar flags replace the value; --add-* and --remove-* flags edit list
properties and repeat. Relation flags take "type:target" pairs, and a
change to REQUIRES or ANYOF is rejected if it would create a cycle.

Examples:
  gantry modify learn_go --status InProgress --priority high
  gantry modify build_cli --add-relation requires:learn_go
  gantry modify deploy --remove-relation blocks:celebrate --add-tag infra`,
	Args: cobra.ExactArgs(1),
	RunE: runModify,
}

var (
	modifyTitle        string
	modifyStatus       string
	modifyPriority     string
	modifyDuration     string
	modifyComment      string
	modifyAddTags      []string
	modifyRemoveTags   []string
	modifyAddCharts    []string
	modifyRemoveCharts []string
	modifyAddRels      []string
	modifyRemoveRels   []string
)

func init() {
	rootCmd.AddCommand(modifyCmd)

	modifyCmd.Flags().StringVar(&modifyTitle, "title", "", "replace the title")
	modifyCmd.Flags().StringVar(&modifyStatus, "status", "", "replace the status")
	modifyCmd.Flags().StringVar(&modifyPriority, "priority", "", "replace the priority")
	modifyCmd.Flags().StringVar(&modifyDuration, "duration", "", "replace the duration")
	modifyCmd.Flags().StringVar(&modifyComment, "comment", "", "replace the comment")
	modifyCmd.Flags().StringArrayVar(&modifyAddTags, "add-tag", nil, "add a tag (repeatable)")
	modifyCmd.Flags().StringArrayVar(&modifyRemoveTags, "remove-tag", nil, "remove a tag (repeatable)")
	modifyCmd.Flags().StringArrayVar(&modifyAddCharts, "add-chart", nil, "add a chart (repeatable)")
	modifyCmd.Flags().StringArrayVar(&modifyRemoveCharts, "remove-chart", nil, "remove a chart (repeatable)")
	modifyCmd.Flags().StringArrayVar(&modifyAddRels, "add-relation", nil, "add a type:target relation (repeatable)")
	modifyCmd.Flags().StringArrayVar(&modifyRemoveRels, "remove-relation", nil, "remove a type:target relation (repeatable)")
}

func runModify(cmd *cobra.Command, args []string) error {
	repo, ws, err := openRepository()
	if err != nil {
		return err
	}
	unlock, err := lockWorkspace(ws)
	if err != nil {
		return err
	}
	defer unlock()

	g, err := repo.Load()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	item, err := g.FindBySubstring(args[0])
	if err != nil {
		return err
	}

	var changed []string
	touchRelations := false

	if cmd.Flags().Changed("title") {
		item = item.WithTitle(modifyTitle)
		changed = append(changed, "title")
	}
	if modifyStatus != "" {
		status, err := models.ParseStatus(modifyStatus)
		if err != nil {
			return err
		}
		item = item.WithStatus(status)
		changed = append(changed, "status")
	}
	if modifyPriority != "" {
		priority, err := models.ParsePriority(modifyPriority)
		if err != nil {
			return err
		}
		item = item.WithPriority(priority)
		changed = append(changed, "priority")
	}
	if modifyDuration != "" {
		duration, err := models.ParseDuration(modifyDuration)
		if err != nil {
			return err
		}
		item = item.WithDuration(duration)
		changed = append(changed, "duration")
	}
	if cmd.Flags().Changed("comment") {
		item = item.WithUserComment(modifyComment)
		changed = append(changed, "comment")
	}
	for _, tag := range modifyAddTags {
		item = item.AddTag(tag)
	}
	for _, tag := range modifyRemoveTags {
		item = item.RemoveTag(tag)
	}
	if len(modifyAddTags)+len(modifyRemoveTags) > 0 {
		changed = append(changed, "tags")
	}
	for _, chart := range modifyAddCharts {
		item = item.AddChart(chart)
	}
	for _, chart := range modifyRemoveCharts {
		item = item.RemoveChart(chart)
	}
	if len(modifyAddCharts)+len(modifyRemoveCharts) > 0 {
		changed = append(changed, "charts")
	}

	for _, arg := range modifyAddRels {
		rt, target, err := splitRelationArg(arg)
		if err != nil {
			return err
		}
		item = item.AddRelationTarget(rt, target)
		touchRelations = true
	}
	for _, arg := range modifyRemoveRels {
		rt, target, err := splitRelationArg(arg)
		if err != nil {
			return err
		}
		if !item.HasRelationTarget(rt, target) {
			return fmt.Errorf("no %s relation to %s on item '%s'", rt, target, item.ID)
		}
		item = item.RemoveRelationTarget(rt, target)
		touchRelations = true
	}
	if touchRelations {
		changed = append(changed, "relations")
	}

	if len(changed) == 0 {
		return fmt.Errorf("nothing to modify, pass at least one flag")
	}

	// Relation edits are vetted on a scratch copy so a rejected change
	// leaves the graph untouched.
	if touchRelations {
		scratch := g.Clone()
		scratch.Add(item)
		if err := scratch.VerifyAcyclic(); err != nil {
			return err
		}
	}

	g.Add(item)
	if err := repo.Save(g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	if isJSON() {
		return printJSON(cmd, newItemResponse(item))
	}
	cmd.Printf("Modified %s of item '%s'\n", strings.Join(changed, ", "), item.ID)
	warnIfUnhealthy(cmd, g)
	return nil
}
