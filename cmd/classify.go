package cmd

import (
	"github.com/jjtimmons/offtarget/internal/offtarget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newClassifyCmd is for classifying a BLAST result file that was made elsewhere.
func newClassifyCmd(v *viper.Viper) *cobra.Command {
	classifyCmd := &cobra.Command{
		Use:                        "classify",
		Short:                      "Report the off-target matches in an existing BLAST result file",
		SuggestionsMinimumDistance: 2,
		Example:                    "  offtarget classify --blast-result blast_result.txt --min-length 50 --print",
		Long: `Report the off-target matches in an existing BLAST result file.

The BLAST results have to be in tabular format (blastn -outfmt 6) and each
query has to be named by its own locus, "chrom:start-end", as
"bedtools getfasta" names them. A query with any other name is an error
and the report isn't written.`,
		Aliases: []string{"filter"},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := settings(v)
			if err != nil {
				return err
			}
			if err := conf.ValidateClassify(); err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr(), conf.Verbose)
			o := offtarget.RunClassify(conf, log)

			if show, _ := cmd.Flags().GetBool("print"); show && o.Hits != nil {
				printHits(cmd.OutOrStdout(), o.Hits)
			}
			return nil
		},
	}

	addOutputFlags(classifyCmd)

	return classifyCmd
}
