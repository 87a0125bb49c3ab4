package config

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"testing"
)

// make tests run in the projects root directory.
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestInit(t *testing.T) {
	Setup()
	fmt.Printf("LogLvl: %v\n", Settings.Log.LogLvl)
	fmt.Printf("LogLvl set: %v\n", LogLevel)
	fmt.Printf("TTSizeMB: %v\n", Settings.Search.TTSizeMB)
	fmt.Printf("PawnValue: %v\n", Settings.Eval.PawnValue)
}

func TestString(t *testing.T) {
	Setup()
	fmt.Println(Settings.String())
}
