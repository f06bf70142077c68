package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/go-jclass/jclass"
	"github.com/go-jclass/jclass/cfg"
	"github.com/go-jclass/jclass/internal/loadfile"
)

var verbose bool

func loadClass(path string) (*jclass.ClassFile, error) {
	lf, err := loadfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer lf.Close()

	cf, diags, err := jclass.Read(lf.Reader())
	if err != nil {
		return nil, fmt.Errorf("could not read class file: %w", err)
	}
	for _, d := range diags.Items() {
		fmt.Fprintf(os.Stderr, "%s\n", d)
	}
	return cf, nil
}

func runDump(cmd *cobra.Command, args []string) {
	for i, path := range args {
		if i > 0 {
			fmt.Println()
		}
		cf, err := loadClass(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		printDump(path, cf)
	}
}

func printDump(path string, cf *jclass.ClassFile) {
	this, _ := cf.ThisName()
	super, _ := cf.SuperName()
	fmt.Printf("%s: version %s (class file %d.%d)\n\n", path, cf.Version, cf.Version.Major, cf.Version.Minor)
	fmt.Printf("this class: %s\n", this)
	if super != "" {
		fmt.Printf("super class: %s\n", super)
	}
	fmt.Printf("access flags: 0x%04x\n", cf.Access)
	fmt.Printf("interfaces: %d, fields: %d, methods: %d, attributes: %d\n",
		len(cf.Interfaces), len(cf.Fields), len(cf.Methods), len(cf.Attrs))

	fmt.Println("\nmethods:")
	for _, m := range cf.Methods {
		name, _ := cf.Pool.UTF8At(m.NameIndex)
		desc, _ := cf.Pool.UTF8At(m.DescIndex)
		codeMark := ""
		if m.Code() != nil {
			codeMark = " [code]"
		}
		fmt.Printf("  %s%s%s\n", name, desc, codeMark)
	}

	fmt.Println("\nfields:")
	for _, f := range cf.Fields {
		name, _ := cf.Pool.UTF8At(f.NameIndex)
		desc, _ := cf.Pool.UTF8At(f.DescIndex)
		fmt.Printf("  %s %s\n", desc, name)
	}
}

func runCFG(cmd *cobra.Command, args []string) {
	path, methodName := args[0], args[1]
	cf, err := loadClass(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var target *jclass.MethodInfo
	for i := range cf.Methods {
		name, _ := cf.Pool.UTF8At(cf.Methods[i].NameIndex)
		if name == methodName {
			target = &cf.Methods[i]
			break
		}
	}
	if target == nil {
		fmt.Fprintf(os.Stderr, "no such method: %s\n", methodName)
		os.Exit(1)
	}

	g, err := cf.Disassemble(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not disassemble %s: %v\n", methodName, err)
		os.Exit(1)
	}

	labels := make([]int, 0, len(g.Blocks))
	for l := range g.Blocks {
		labels = append(labels, int(l))
	}
	sort.Ints(labels)

	for _, li := range labels {
		l := cfg.Label(li)
		b := g.Blocks[l]
		fmt.Printf("block %d:\n", l)
		for _, in := range b.Insns {
			fmt.Printf("  %s\n", in)
		}
		for _, e := range g.Out(l) {
			fmt.Printf("  -> block %d (%s)\n", e.Target, e.Kind)
		}
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "classdump",
		Short: "Inspect JVM class files",
		Long:  "classdump reads the structure of .class files and the control-flow graph of their methods",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose trace logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		jclass.SetDebugMode(verbose)
	}

	dumpCmd := &cobra.Command{
		Use:   "dump file1.class [file2.class ...]",
		Short: "Print a class file's structure",
		Args:  cobra.MinimumNArgs(1),
		Run:   runDump,
	}

	cfgCmd := &cobra.Command{
		Use:   "cfg file.class method",
		Short: "Print a method's control-flow graph",
		Args:  cobra.ExactArgs(2),
		Run:   runCFG,
	}

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(cfgCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
