package cmd

import (
	"github.com/jjtimmons/offtarget/config"
	"github.com/jjtimmons/offtarget/internal/blast"
	"github.com/jjtimmons/offtarget/internal/offtarget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newFindCmd is for running the whole pipeline: BED -> FASTA -> BLAST -> report.
func newFindCmd(v *viper.Viper, runner blast.Runner) *cobra.Command {
	findCmd := &cobra.Command{
		Use:                        "find",
		Short:                      "Find off-target matches of the amplicons in a BED file",
		SuggestionsMinimumDistance: 2,
		Example:                    "  offtarget find --bed IAD143293_241_Designed.bed --genome hg19.fa --min-length 50",
		Long: `Find off-target matches of the amplicons in a BED file.

"offtarget find" runs three stages:

1. Extracting each interval's sequence from the genome with "bedtools getfasta".
   Each sequence is named by its locus, ie "chr1:99-200"
2. BLASTing the sequences against the genome (a BLAST db made with makeblastdb
   that shares the genome's path) with "blastn", keeping only 100% identity matches
3. Writing the matches that fall outside of their amplicon's chromosome and interval,
   and are longer than --min-length, to the output report

Each stage is attempted even if one before it failed. Failures are logged and
the missing or partial output files are the signal that something went wrong.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := settings(v)
			if err != nil {
				return err
			}
			if err := conf.Validate(); err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr(), conf.Verbose)
			o := offtarget.Run(cmd.Context(), conf, runner, log)

			if show, _ := cmd.Flags().GetBool("print"); show && o.Hits != nil {
				printHits(cmd.OutOrStdout(), o.Hits)
			}
			return nil
		},
	}

	flags := findCmd.Flags()
	flags.String("bed", "", "BED file with the amplicons' intervals")
	flags.StringP("genome", "g", "", "reference genome FASTA, also the name of its BLAST db")
	flags.StringP("target-fasta", "f", config.DefaultTargetFasta, "FASTA file to write the amplicons' sequences to")
	flags.String("bedtools", config.DefaultBedtools, "path to the bedtools binary")
	flags.String("blastn", config.DefaultBlastn, "path to the blastn binary")
	addOutputFlags(findCmd)

	return findCmd
}
