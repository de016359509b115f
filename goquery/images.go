package goquery

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ImageResolutionWarning records an image dropped from the article because
// its src could not be resolved to an absolute URL.
type ImageResolutionWarning struct {
	Src string
	Err error
}

func (w ImageResolutionWarning) String() string {
	return fmt.Sprintf("image %q dropped: %v", w.Src, w.Err)
}

// FixImages makes every image source in fragment absolute against base.
// Images without a src are removed, as are images whose src fails to
// resolve; the latter are reported as warnings. Elements that only held a
// dropped image are left in place, so a cleaned fragment needs Clean again.
func FixImages(fragment *goquery.Selection, base *url.URL) []ImageResolutionWarning {
	var warnings []ImageResolutionWarning
	fragment.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			img.Remove()
			return
		}

		resolved, err := ResolveImageURL(base, src)
		if err != nil {
			warnings = append(warnings, ImageResolutionWarning{Src: src, Err: err})
			img.Remove()
			return
		}
		img.SetAttr("src", resolved)
	})
	return warnings
}

// ResolveImageURL resolves src against base and normalizes the resulting
// path. Sources that already use http or https are returned unchanged.
func ResolveImageURL(base *url.URL, src string) (string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src, nil
	}

	ref, err := url.Parse(src)
	if err != nil {
		return "", err
	}

	abs := base.ResolveReference(ref)
	if abs.Opaque == "" && abs.Path != "" {
		abs.Path = path.Clean(abs.Path)
		abs.RawPath = ""
	}
	return abs.String(), nil
}
