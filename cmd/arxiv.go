package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bridges/internal/arxiv"
)

var (
	arxivAuthor string
	arxivMin    int
)

var arxivCmd = &cobra.Command{
	Use:   "arxiv <file>",
	Short: "Summarize an article metadata dump",
	Long: `Reads an arxiv metadata dump and prints the most published authors. With
--author, also lists that author's coauthors and suggested collaborators.
With --min, only articles with an author of at least that many articles
are counted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		x, err := arxiv.Read(f)
		if err != nil {
			return err
		}
		logger.Debug("arxiv loaded", zap.String("file", args[0]), zap.Int("articles", len(x)))

		if arxivMin > 0 {
			x.KeepProlific(arxivMin)
			fmt.Printf("%d articles have an author with at least %d articles\n", len(x), arxivMin)
		}

		fmt.Printf("Most published    : %s\n", joinAuthors(x.MostPublished()))

		if arxivAuthor == "" {
			return nil
		}
		author, err := arxiv.ParseAuthor(arxivAuthor)
		if err != nil {
			return err
		}
		articles := x.AuthorsToArticles()[author]
		fmt.Printf("Articles by %s : %s\n", author, orDash(strings.Join(articles, ", ")))
		fmt.Printf("Coauthors         : %s\n", joinAuthors(x.Coauthors(author)))
		fmt.Printf("Suggested         : %s\n", joinAuthors(x.SuggestCollaborators(author)))
		return nil
	},
}

func joinAuthors(authors []arxiv.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.First + " " + a.Last
	}
	return orDash(strings.Join(names, "; "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	arxivCmd.Flags().StringVar(&arxivAuthor, "author", "", "Author as Last,First")
	arxivCmd.Flags().IntVar(&arxivMin, "min", 0, "Keep only articles with an author of at least this many articles")
	rootCmd.AddCommand(arxivCmd)
}
