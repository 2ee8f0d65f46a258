package generate

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/cmdutil"
	"github.com/leefowlercu/cinemalens/internal/cypher"
	"github.com/leefowlercu/cinemalens/internal/entities"
)

// Flag variables
var (
	generateFile        string
	generateInputFormat string
	generateOutput      string
	generateStrict      bool

	generateMovies      []string
	generateActors      []string
	generateDirectors   []string
	generateGenres      []string
	generateYearStart   int
	generateYearEnd     int
	generateActorsUnion bool
	generateGenresUnion bool
)

// GenerateCmd compiles an entity record into a Cypher query without touching the graph.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Cypher query from an entity record",
	Long: "Generate a Cypher query from an entity record.\n\n" +
		"The record is read from --file (use - for stdin) as JSON or YAML, or assembled " +
		"from the entity flags. The query strategy is chosen from the entities present: " +
		"reference movies select similarity ranking, reference movies with genres select " +
		"the combined strategy, and anything else is a plain attribute filter.\n\n" +
		"All values are bound as query parameters, which are printed with the query.",
	Example: `  # Movies like Heat
  cinemalens generate --movie Heat

  # Comedies with either actor, from the 1990s
  cinemalens generate --actor "Bill Murray" --actor "Steve Martin" --actors-union \
    --genre comedy --year-start 1990 --year-end 1999

  # Record from a file, printed as JSON
  cinemalens generate --file entities.json --output json

  # Record from stdin
  echo 'movie: [alien]' | cinemalens generate --file - --input-format yaml`,
	PreRunE: validateGenerate,
	RunE:    runGenerate,
}

func init() {
	addGenerateFlags(GenerateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateFile, "file", "f", "", "Read the entity record from a file (- for stdin)")
	cmd.Flags().StringVar(&generateInputFormat, "input-format", "json", "Entity record format (json, yaml)")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", cmdutil.FormatText, "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&generateStrict, "strict", false, "Reject records that fail validation")

	cmd.Flags().StringArrayVar(&generateMovies, "movie", nil, "Reference movie title (repeatable)")
	cmd.Flags().StringArrayVar(&generateActors, "actor", nil, "Actor name (repeatable)")
	cmd.Flags().StringArrayVar(&generateDirectors, "director", nil, "Director name (repeatable)")
	cmd.Flags().StringArrayVar(&generateGenres, "genre", nil, "Genre (repeatable)")
	cmd.Flags().IntVar(&generateYearStart, "year-start", 0, "Earliest release year")
	cmd.Flags().IntVar(&generateYearEnd, "year-end", 0, "Latest release year")
	cmd.Flags().BoolVar(&generateActorsUnion, "actors-union", false, "Match any listed actor instead of all")
	cmd.Flags().BoolVar(&generateGenresUnion, "genres-union", false, "Match any listed genre instead of all")

	for _, name := range []string{"movie", "actor", "director", "genre"} {
		cmd.MarkFlagsMutuallyExclusive("file", name)
	}
}

func validateGenerate(cmd *cobra.Command, args []string) error {
	if err := cmdutil.ValidateFormat(generateOutput); err != nil {
		return err
	}

	switch strings.ToLower(generateInputFormat) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("invalid input format %q; must be one of: json, yaml", generateInputFormat)
	}

	cmd.SilenceUsage = true
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	record, err := readRecord(cmd)
	if err != nil {
		return err
	}

	if generateStrict {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("invalid entity record; %w", err)
		}
	}

	q := cypher.Generate(record)
	return cmdutil.WriteQuery(cmd.OutOrStdout(), generateOutput, q)
}

func readRecord(cmd *cobra.Command) (*entities.Entities, error) {
	if generateFile == "" {
		return recordFromFlags(cmd), nil
	}

	var (
		data []byte
		err  error
	)
	if generateFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		path, perr := cmdutil.ResolvePath(generateFile)
		if perr != nil {
			return nil, fmt.Errorf("failed to resolve path; %w", perr)
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read entity record; %w", err)
	}

	return entities.Parse(data, generateInputFormat)
}

func recordFromFlags(cmd *cobra.Command) *entities.Entities {
	record := &entities.Entities{
		Movie:    generateMovies,
		Actor:    generateActors,
		Director: generateDirectors,
		Genre:    entities.Lower(generateGenres),
	}
	if cmd.Flags().Changed("year-start") {
		record.YearStart = entities.Int(generateYearStart)
	}
	if cmd.Flags().Changed("year-end") {
		record.YearEnd = entities.Int(generateYearEnd)
	}
	if cmd.Flags().Changed("actors-union") {
		record.ActorsUnion = entities.Bool(generateActorsUnion)
	}
	if cmd.Flags().Changed("genres-union") {
		record.GenresUnion = entities.Bool(generateGenresUnion)
	}
	if len(record.Movie) > 0 {
		record.MoviesPresent = entities.Bool(true)
	}
	return record
}
