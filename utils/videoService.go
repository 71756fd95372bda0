package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

var videoClient = resty.New().SetTimeout(10 * time.Second)

// ProbeVideoURL checks that a lesson's video URL answers at all. Called in a
// goroutine after an admin saves a VIDEO lesson; a dead link is logged, not
// rejected, since hosting outages must not block catalog edits.
func ProbeVideoURL(lessonKey, url string) {
	if url == "" {
		return
	}

	resp, err := videoClient.R().Head(url)
	if err != nil {
		log.Printf("Video probe failed for lesson %s (%s): %v", lessonKey, url, err)
		return
	}

	if resp.StatusCode() >= 400 {
		log.Printf("Video probe for lesson %s (%s) returned %d", lessonKey, url, resp.StatusCode())
	}
}
