package main

import (
	"github.com/spf13/cobra"
)

func addCommands(root *cobra.Command) {
	// Queries
	cmd := &cobra.Command{
		Use:   "date date",
		Short: "List every reading taken on the given date",
		Args:  cobra.ExactArgs(1),
		Run:   searchByDate}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "uhf uhf-code",
		Short: "List every reading in the given UHF zone",
		Args:  cobra.ExactArgs(1),
		Run:   searchByUHF}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "borough borough",
		Short: "List every reading in the given borough",
		Args:  cobra.ExactArgs(1),
		Run:   searchByBorough}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:     "zip zip-code",
		Aliases: []string{"zipcode"},
		Short:   "List every reading in the UHF zones covering the given zip code",
		Args:    cobra.ExactArgs(1),
		Run:     searchByZipcode}
	root.AddCommand(cmd)

	// Shell
	cmd = &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive search menu",
		Args:  cobra.NoArgs,
		Run:   runShell}
	root.AddCommand(cmd)

	// Data
	cmd = &cobra.Command{
		Use:   "seed [dir]",
		Short: "Write the bundled sample tables into dir (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		Run:   seedData}
	root.AddCommand(cmd)
}

func main() {
	var root = &cobra.Command{
		Use:   "airquery",
		Short: "Look up NYC air-quality readings by date, UHF zone, borough or zip code",
		Args:  cobra.NoArgs,
		Run:   runShell}
	root.PersistentFlags().String("config", "airquery.yaml", "config file")
	root.PersistentFlags().String("air-quality", "", "air-quality table (default: air_quality.csv)")
	root.PersistentFlags().String("uhf", "", "UHF reference table (default: uhf.csv)")
	root.PersistentFlags().String("pairing", "", "pairing of repeated geo ids, 'each' or 'first-occurrence'")
	root.PersistentFlags().Int("width", 0, "line width of the shell result list (default: 200)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: warn)")
	addCommands(root)
	root.Execute()
}
