package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

var postsOpts struct {
	input      string
	baseLength float64
	baseWidth  float64
	shelves    int
	maxWeight  float64
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Size stacks per post and fill them group by group",
	Long: `Import a container list with post numbers, size the stack topology per
post (shelf height from the tallest container, stack count from the
per-material row-fill estimate) and run the grouped sequential fill
that keeps article and material groups together.`,
	Run: runPosts,
}

func init() {
	f := postsCmd.Flags()
	f.StringVarP(&postsOpts.input, "input", "i", "", "container list with post numbers (.csv or .xlsx)")
	f.Float64Var(&postsOpts.baseLength, "length", 200, "stack base length (cm)")
	f.Float64Var(&postsOpts.baseWidth, "width", 120, "stack base width (cm)")
	f.IntVar(&postsOpts.shelves, "shelves", 5, "shelves per stack")
	f.Float64Var(&postsOpts.maxWeight, "max-weight", 500, "shelf weight capacity (kg)")
	postsCmd.MarkFlagRequired("input")
}

func runPosts(cmd *cobra.Command, args []string) {
	result := importContainers(postsOpts.input)
	if len(result.Posts) == 0 {
		exitError("no posts found in %s (rows need a post column)", postsOpts.input)
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, post := range result.Posts {
		set := model.NewContainerSet()

		post.CalculateRequirements(postsOpts.baseLength, postsOpts.baseWidth)
		stacks := post.BuildStacks(postsOpts.baseLength, postsOpts.baseWidth,
			postsOpts.shelves, postsOpts.maxWeight)

		bold.Printf("\nPost %s: %d containers, %d stack(s), shelf height %.1f cm\n",
			post.Number, len(post.Containers), post.RequiredStacks, post.OptimalShelfHeight)

		report, err := engine.DistributePost(set, post, stacks)
		if err != nil {
			exitError("%v", err)
		}

		for _, e := range report.Log {
			if e.Status == model.StatusPlaced {
				green.Printf("  ✓ %s (%s, %s) -> %s level %d\n",
					e.ContainerID, e.Article, e.Material, e.Stack, e.Level)
			} else {
				red.Printf("  ✗ %s (%s, %s) not placed\n", e.ContainerID, e.Article, e.Material)
			}
		}

		fmt.Printf("  Placed %d of %d\n", report.Placed, report.Total)

		groups := make([]string, 0, len(report.ByGroup))
		for key := range report.ByGroup {
			groups = append(groups, key)
		}
		sort.Strings(groups)
		for _, key := range groups {
			count := report.ByGroup[key]
			line := fmt.Sprintf("    %-20s %d placed", key, count.Placed)
			if count.NotPlaced > 0 {
				line += fmt.Sprintf(", %d unplaced", count.NotPlaced)
			}
			fmt.Println(line)
		}

		for _, st := range stacks {
			if stats := st.Stats(set); stats.TotalContainers > 0 {
				fmt.Printf("    %s: %d containers, %.1f kg, %.1f%%\n",
					st.Name, stats.TotalContainers, stats.TotalWeight, stats.UtilizationPercent)
			}
		}
	}
}
