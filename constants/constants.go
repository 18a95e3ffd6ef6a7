package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("ENGRAVER_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetListenAddr() string {
	addr := os.Getenv("ENGRAVER_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("ENGRAVER_DYNAMO_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetDynamoTable() string {
	table := os.Getenv("ENGRAVER_DYNAMO_TABLE")
	if table != "" {
		return table
	}
	return "engraver-scores"
}

const DefaultBpm = 120.0

// Seconds of silence before the live listener re-engraves.
const ListenQuietPeriodMs = 400
