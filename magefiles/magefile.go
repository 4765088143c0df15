//go:build mage

// Цели сборки linkvault для Mage.
//
//	mage build      собрать linkvault, linkctl и staticlint в bin/
//	mage test       запустить тесты с -race
//	mage lint       проверить код собственным staticlint
//	mage generate   перегенерировать моки
//	mage clean      удалить bin/
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

var commands = []string{"linkvault", "linkctl", "staticlint"}

// Build собирает все команды в bin/
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	for _, name := range commands {
		if err := sh.RunV("go", "build", "-o", filepath.Join(binDir, name), "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Test запускает все тесты
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint запускает staticlint по всему модулю
func Lint() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "staticlint"), "./...")
}

// Generate перегенерирует моки
func Generate() error {
	return sh.RunV("go", "generate", "./internal/...")
}

// Clean удаляет артефакты сборки
func Clean() error {
	return os.RemoveAll(binDir)
}
