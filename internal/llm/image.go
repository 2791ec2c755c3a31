package llm

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
)

// MaxImageBytes is the ceiling for palm image attachments. An attachment of
// exactly this size is accepted; one byte over is rejected locally.
const MaxImageBytes = 10 << 20 // 10 MiB

// Attachment guard errors. These are caller-input failures detected before
// any network call, distinct from the orchestration error taxonomy.
var (
	// ErrAttachmentEmpty indicates a zero-byte image upload.
	ErrAttachmentEmpty = errors.New("palm image is empty")

	// ErrAttachmentTooLarge indicates an image above the size ceiling.
	ErrAttachmentTooLarge = fmt.Errorf("palm image exceeds %d bytes", MaxImageBytes)
)

// checkAttachment enforces the local attachment bounds.
func checkAttachment(image []byte) error {
	if len(image) == 0 {
		return ErrAttachmentEmpty
	}
	if len(image) > MaxImageBytes {
		return ErrAttachmentTooLarge
	}
	return nil
}

// detectImageMIME sniffs the attachment's type from its magic bytes.
// Unrecognized payloads default to JPEG; the endpoint tolerates a wrong
// label better than a missing one.
func detectImageMIME(image []byte) string {
	switch {
	case len(image) >= 2 && image[0] == 0xff && image[1] == 0xd8:
		return "image/jpeg"
	case bytes.HasPrefix(image, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case len(image) >= 12 && bytes.HasPrefix(image, []byte("RIFF")) && bytes.Equal(image[8:12], []byte("WEBP")):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// imageDataURL inlines the attachment as a base64 data URL for the
// image part of a multi-modal invocation.
func imageDataURL(image []byte) string {
	return fmt.Sprintf("data:%s;base64,%s",
		detectImageMIME(image), base64.StdEncoding.EncodeToString(image))
}
