package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"log"
	"path"
	"regexp"
	"time"

	"github.com/disintegration/imaging"
)

const (
	AvatarJpegQuality   = 85
	AvatarFileExtension = ".jpeg"

	// earlier deployments stored avatars as webp; Remove still sweeps them
	legacyAvatarExtension = ".webp"
)

var dataURIRe = regexp.MustCompile(`^data:image/(png|jpeg);base64,(.*)$`)

// AvatarProcessor crops uploaded profile pictures square and stores them
// under the owning person's id, one file per person. it relies on a Store
// implementation for saving the results.
type AvatarProcessor struct {
	store         Store
	publicBaseURL string
	size          int
}

// NewAvatarProcessor creates a processor producing size×size JPEG avatars.
// publicBaseURL is prepended to the stored asset's relative path to form the
// public URL handed back to clients.
func NewAvatarProcessor(store Store, publicBaseURL string, size int) *AvatarProcessor {
	return &AvatarProcessor{store: store, publicBaseURL: publicBaseURL, size: size}
}

// SaveDataURI decodes a base64 image data URI (png or jpeg), processes it
// and stores it as the person's avatar. Returns the public URL.
func (p *AvatarProcessor) SaveDataURI(personID, dataURI string) (string, error) {
	match := dataURIRe.FindStringSubmatch(dataURI)
	if match == nil {
		return "", fmt.Errorf("invalid data URI format, expected base64 image/png or image/jpeg")
	}
	raw, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 image data: %w", err)
	}
	return p.SaveImage(personID, bytes.NewReader(raw))
}

// SaveImage decodes image data from r, crops it to a centered square of the
// configured size and stores it as the person's avatar. Returns the public
// URL, with a timestamp query to bust caches on re-upload.
func (p *AvatarProcessor) SaveImage(personID string, r io.Reader) (string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode uploaded avatar image: %w", err)
	}
	log.Printf("media.avatar: Decoded uploaded avatar for %s (format: %s)", personID, format)

	cropped := imaging.Fill(img, p.size, p.size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.JPEG, imaging.JPEGQuality(AvatarJpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode avatar: %w", err)
	}

	relPath, err := p.store.Save(AssetTypeAvatar, personID+AvatarFileExtension, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to save avatar via store: %w", err)
	}

	return fmt.Sprintf("%s/%s?t=%d", p.publicBaseURL, relPath, time.Now().Unix()), nil
}

// Remove deletes any stored avatar files for a person, current and legacy
// formats both. Failures are logged, not returned: avatar cleanup must never
// block a record deletion that already committed.
func (p *AvatarProcessor) Remove(personID string) {
	subDir := string(AssetTypeAvatar)
	for _, ext := range []string{AvatarFileExtension, legacyAvatarExtension} {
		relPath := path.Join(subDir, personID+ext)
		if err := p.store.Delete(relPath); err != nil {
			log.Printf("media.avatar: could not remove avatar %s: %v", relPath, err)
		}
	}
}
