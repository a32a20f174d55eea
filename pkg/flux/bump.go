package flux

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
)

var (
	// ErrMissingImage indicates the release values carry no image block.
	ErrMissingImage = errors.New("missing or invalid image block in values")
	// ErrImageMismatch indicates the release deploys a different image.
	ErrImageMismatch = errors.New("image not found in release")
	// ErrTagNotNumeric indicates the last tag component cannot be incremented.
	ErrTagNotNumeric = errors.New("cannot increment tag")
)

// Bump records a tag change made by BumpImageTag.
type Bump struct {
	Repository string
	OldTag     string
	NewTag     string
}

// NextTag increments the last dot-separated component of tag, so 1.2.9
// becomes 1.2.10 and 41 becomes 42.
//
// Parameters:
//   - tag: Current tag.
//
// Returns:
//   - string: Incremented tag.
//   - error: ErrTagNotNumeric if the last component is not a number.
func NextTag(tag string) (string, error) {
	parts := strings.Split(tag, ".")
	last := len(parts) - 1

	number, err := strconv.Atoi(parts[last])
	if err != nil || number < 0 {
		return "", fmt.Errorf("%w %q", ErrTagNotNumeric, tag)
	}

	parts[last] = strconv.Itoa(number + 1)

	return strings.Join(parts, "."), nil
}

// BumpImageTag increments .spec.values.image.tag of the HelmRelease at path,
// provided .spec.values.image.repository equals image, and writes it back.
//
// Parameters:
//   - path: HelmRelease manifest.
//   - image: Expected image repository.
//
// Returns:
//   - Bump: Old and new tag.
//   - error: ErrMissingImage, ErrImageMismatch, ErrTagNotNumeric or an I/O error.
func BumpImageTag(path, image string) (Bump, error) {
	release, err := ReadHelmRelease(path)
	if err != nil {
		return Bump{}, err
	}

	if release.Spec.Values == nil || len(release.Spec.Values.Raw) == 0 {
		return Bump{}, ErrMissingImage
	}

	var values map[string]any
	if err := json.Unmarshal(release.Spec.Values.Raw, &values); err != nil {
		return Bump{}, fmt.Errorf("failed to parse .spec.values: %w", err)
	}

	imageValues, ok := values["image"].(map[string]any)
	if !ok {
		return Bump{}, ErrMissingImage
	}

	repository, _ := imageValues["repository"].(string)
	if repository != image {
		return Bump{}, fmt.Errorf("%w: want %q, found %q", ErrImageMismatch, image, repository)
	}

	oldTag := tagString(imageValues["tag"])

	newTag, err := NextTag(oldTag)
	if err != nil {
		return Bump{}, err
	}

	imageValues["tag"] = newTag

	raw, err := json.Marshal(values)
	if err != nil {
		return Bump{}, fmt.Errorf("failed to encode values: %w", err)
	}

	release.Spec.Values = &apiextensionsv1.JSON{Raw: raw}

	if err := writeRelease(path, release); err != nil {
		return Bump{}, err
	}

	logrus.WithFields(logrus.Fields{
		"image": repository,
		"from":  oldTag,
		"to":    newTag,
	}).Info("Bumped image tag")

	return Bump{Repository: repository, OldTag: oldTag, NewTag: newTag}, nil
}

// tagString accepts tags written as YAML numbers as well as strings.
func tagString(value any) string {
	switch tag := value.(type) {
	case string:
		return tag
	case float64:
		return strconv.FormatFloat(tag, 'f', -1, 64)
	default:
		return ""
	}
}
