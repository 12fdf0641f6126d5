package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

func main() {
	bin, err := exec.LookPath("whitefiber")
	if err != nil {
		fmt.Fprintln(os.Stderr, "wf: whitefiber not found on PATH")
		os.Exit(1)
	}
	if err := syscall.Exec(bin, append([]string{"whitefiber"}, os.Args[1:]...), os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "wf: %v\n", err)
		os.Exit(1)
	}
}
