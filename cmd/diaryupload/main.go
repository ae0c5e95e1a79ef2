// Command diaryupload adds a diary entry through a running lifeboard API:
// either an image file, uploaded via a presigned URL, or a video link.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/diaryclient"
	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

func main() {
	apiURL := flag.String("a", "http://localhost:3333", "lifeboard API base URL")
	file := flag.String("f", "", "image file to upload")
	video := flag.String("v", "", "video link to add")
	timeout := flag.Duration("t", time.Minute, "overall timeout")
	flag.Parse()

	log := logging.New("info", "text", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	c := diaryclient.New(*apiURL, &http.Client{})

	var (
		entry *models.DiaryEntry
		err   error
	)
	switch {
	case *file != "":
		var data []byte
		data, err = os.ReadFile(*file)
		if err == nil {
			entry, err = c.UploadImage(ctx, data, http.DetectContentType(data))
		}
	case *video != "":
		entry, err = c.AddVideo(ctx, *video)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error(ctx, "diary upload failed", "error", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(entry, "", "  ")
	fmt.Println(string(out))
}
