package logging

import "os"

func stdout() *os.File { return os.Stdout }
