// Package blob issues signed read URLs for storage blobs and fetches blob content through them.
package blob

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"

	"github.com/fairyhunter13/storefront-service/internal/clock"
)

// DefaultExpiry is how long a signed URL stays valid unless told otherwise.
const DefaultExpiry = 24 * time.Hour

// Signer produces read-only SAS URLs. It holds only immutable credentials
// and is safe for concurrent use.
type Signer struct {
	endpoint string
	cred     *azblob.SharedKeyCredential
	clk      clock.Clock
	expiry   time.Duration
}

// NewSigner builds a Signer for the given account. endpoint is the blob
// service root, e.g. https://<account>.blob.core.windows.net.
func NewSigner(account, key, endpoint string, clk clock.Clock) (*Signer, error) {
	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, fmt.Errorf("storage credential: %w", err)
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.blob.core.windows.net", account)
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Signer{
		endpoint: strings.TrimRight(endpoint, "/"),
		cred:     cred,
		clk:      clk,
		expiry:   DefaultExpiry,
	}, nil
}

// WithExpiry returns a copy of s whose default window is d. Non-positive
// values keep DefaultExpiry.
func (s *Signer) WithExpiry(d time.Duration) *Signer {
	cp := *s
	if d > 0 {
		cp.expiry = d
	}
	return &cp
}

// SignedURL returns a read URL for container/blobName valid for the
// signer's default window.
func (s *Signer) SignedURL(container, blobName string) (string, error) {
	return s.SignedURLWithExpiry(container, blobName, s.expiry)
}

// SignedURLWithExpiry returns a read URL valid for expiry from now.
func (s *Signer) SignedURLWithExpiry(container, blobName string, expiry time.Duration) (string, error) {
	if container == "" || blobName == "" {
		return "", ErrEmptyName
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	qp, err := sas.BlobSignatureValues{
		ExpiryTime:    s.clk.Now().Add(expiry).UTC(),
		Permissions:   (&sas.BlobPermissions{Read: true}).String(),
		ContainerName: container,
		BlobName:      blobName,
	}.SignWithSharedKey(s.cred)
	if err != nil {
		return "", fmt.Errorf("sign %s/%s: %w", container, blobName, err)
	}
	return fmt.Sprintf("%s/%s/%s?%s", s.endpoint, url.PathEscape(container), escapePath(blobName), qp.Encode()), nil
}

func escapePath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
