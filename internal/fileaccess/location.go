package fileaccess

import (
	"fmt"
	"strings"
)

const s3Scheme = "s3://"

// Location is a parsed object address: an S3 URL or a local path
type Location struct {
	S3     bool
	Bucket string
	Path   string
}

// ParseLocation splits s3://bucket/key URLs; anything else is a local path
// with an empty bucket.
func ParseLocation(s string) (Location, error) {
	if !strings.HasPrefix(s, s3Scheme) {
		return Location{Path: s}, nil
	}
	bucket, err := GetBucketFromS3Url(s)
	if err != nil {
		return Location{}, err
	}
	key, err := GetPathFromS3Url(s)
	if err != nil {
		return Location{}, err
	}
	return Location{S3: true, Bucket: bucket, Path: key}, nil
}

func (l Location) String() string {
	if l.S3 {
		return s3Scheme + l.Bucket + "/" + l.Path
	}
	return l.Path
}

// WithSuffix returns the location with suffix appended to its path
func (l Location) WithSuffix(suffix string) Location {
	l.Path += suffix
	return l
}

func GetBucketFromS3Url(url string) (string, error) {
	trimmed := strings.TrimPrefix(url, s3Scheme)
	if trimmed == url {
		return "", fmt.Errorf("not a valid S3 url: %v", url)
	}

	// Get the bit before the first slash, that's the bucket
	slashPos := strings.Index(trimmed, "/")
	if slashPos <= 0 {
		return "", fmt.Errorf("failed to get bucket from S3 url: %v", url)
	}
	return trimmed[:slashPos], nil
}

func GetPathFromS3Url(url string) (string, error) {
	trimmed := strings.TrimPrefix(url, s3Scheme)
	if trimmed == url {
		return "", fmt.Errorf("not a valid S3 url: %v", url)
	}

	slashPos := strings.Index(trimmed, "/")
	if slashPos <= 0 || slashPos == len(trimmed)-1 {
		return "", fmt.Errorf("failed to get path from S3 url: %v", url)
	}
	return trimmed[slashPos+1:], nil
}
