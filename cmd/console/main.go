package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"kgeyst.com/proddesc/pkg/common"
	"kgeyst.com/proddesc/pkg/proddesc/api"
)

const imageCommand = ":image "

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

// Usage:
//
//	> red cotton t-shirt, crew neck | comfortable, summer
//	> :image ./tshirt.jpg | comfortable, summer
func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	// the console is for output, so logs go to a file unless configured otherwise
	logPath := config.LogPath
	if logPath == "" {
		logPath = "log.txt"
	}
	logger := common.NewLogger(config.LogLevel, logPath)
	descriptionAPI, err := api.NewAPI(context.Background(), config, logger)
	if err != nil {
		return err
	}
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ctx := logger.WithContext(context.Background())
		what, keywords := splitKeywords(line)
		var description string
		if strings.HasPrefix(what, imageCommand) {
			path := strings.TrimSpace(what[len(imageCommand):])
			if !common.IsImageFormat(path) {
				fmt.Println("unsupported image format:", path)
				continue
			}
			image, err := os.ReadFile(path)
			if err != nil {
				fmt.Println(err)
				continue
			}
			description, err = descriptionAPI.GenerateFromImage(ctx, keywords, image)
			if err != nil {
				fmt.Println(err)
				continue
			}
		} else {
			var keywordsPtr *string
			if keywords != "" {
				keywordsPtr = &keywords
			}
			description, err = descriptionAPI.GenerateDescription(ctx, what, keywordsPtr)
			if err != nil {
				fmt.Println(err)
				continue
			}
		}
		fmt.Println(description)
	}
	return nil
}

// splitKeywords "attributes | keywords" => ("attributes", "keywords")
func splitKeywords(line string) (string, string) {
	what, keywords, _ := strings.Cut(line, "|")
	return strings.TrimSpace(what), strings.TrimSpace(keywords)
}
