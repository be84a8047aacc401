// +build ignore

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Manual smoke test against a running instance. Not part of the build.
//
//	go run scripts/smoke_navigate.go -base http://localhost:8080/api/nldi -comid 13293396 -mode UM -distance 50

type featureCollection struct {
	Features []struct {
		Properties struct {
			NhdplusComid string `json:"nhdplus_comid"`
		} `json:"properties"`
	} `json:"features"`
}

func main() {
	base := flag.String("base", "http://localhost:8080/api/nldi", "API base URL")
	comid := flag.String("comid", "13293396", "start COMID")
	mode := flag.String("mode", "UM", "navigation mode (UM, UT, DM, DD)")
	distance := flag.Float64("distance", 50, "distance limit in km")
	flag.Parse()

	endpoint := fmt.Sprintf("%s/linked-data/comid/%s/navigation/%s/flowlines?distance=%s",
		*base, url.PathEscape(*comid), url.PathEscape(*mode),
		url.QueryEscape(fmt.Sprintf("%g", *distance)))

	client := &http.Client{Timeout: 30 * time.Second}
	start := time.Now()

	resp, err := client.Get(endpoint)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("status %d: %s", resp.StatusCode, body)
	}

	var fc featureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		log.Fatalf("decode failed: %v", err)
	}

	fmt.Printf("GET %s\n", endpoint)
	fmt.Printf("%d flowlines in %v\n", len(fc.Features), time.Since(start).Round(time.Millisecond))

	limit := len(fc.Features)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		fmt.Printf("  %s\n", fc.Features[i].Properties.NhdplusComid)
	}
	if len(fc.Features) > limit {
		fmt.Printf("  ... and %d more\n", len(fc.Features)-limit)
	}
}
