// Package storage implementuje objektove uloziste nad lokalnim diskem.
// Soubory se nikdy neprepisuji, cteni jde vyhradne pres casove omezene
// podepsane URL.
package storage

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrObjectExists = errors.New("objekt na teto ceste uz existuje")
	ErrInvalidPath  = errors.New("neplatna cesta objektu")
)

type DiskStore struct {
	dir    string
	secret []byte
	log    *zap.Logger
}

// NewDiskStore otevre (pripadne zalozi) bucket adresar root/bucket.
func NewDiskStore(root, bucket, secret string, log *zap.Logger) (*DiskStore, error) {
	dir := filepath.Join(root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("bucket adresar nelze vytvorit: %w", err)
	}
	return &DiskStore{dir: dir, secret: []byte(secret), log: log}, nil
}

// cleanPath normalizuje cestu objektu a odmitne unik z bucketu.
func cleanPath(objectPath string) (string, error) {
	p := path.Clean("/" + strings.ReplaceAll(objectPath, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." || strings.HasPrefix(p, "..") {
		return "", ErrInvalidPath
	}
	return p, nil
}

// Upload zapise objekt. Existujici cesta je chyba, verze se nikdy
// neprepisuji.
func (s *DiskStore) Upload(objectPath string, r io.Reader) (int64, error) {
	p, err := cleanPath(objectPath)
	if err != nil {
		return 0, err
	}
	full := filepath.Join(s.dir, filepath.FromSlash(p))

	if _, err := os.Stat(full); err == nil {
		return 0, ErrObjectExists
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("adresar objektu nelze vytvorit: %w", err)
	}

	// O_EXCL drzi no-overwrite i pri soubehu dvou uploadu
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return 0, ErrObjectExists
		}
		return 0, fmt.Errorf("objekt nelze vytvorit: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(full)
		return 0, fmt.Errorf("zapis objektu selhal: %w", err)
	}

	s.log.Debug("objekt ulozen", zap.String("path", p), zap.Int64("bytes", written))
	return written, nil
}

// Open otevre objekt pro cteni. Volajici zavira.
func (s *DiskStore) Open(objectPath string) (*os.File, error) {
	p, err := cleanPath(objectPath)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.dir, filepath.FromSlash(p)))
}

type urlClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// DefaultSignedURLExpiry: vychozi platnost podepsane URL.
const DefaultSignedURLExpiry = 60 * time.Second

// SignedURL vrati relativni URL s podepsanym tokenem nesoucim cestu
// objektu a expiraci.
func (s *DiskStore) SignedURL(objectPath string, expiresIn time.Duration) (string, error) {
	p, err := cleanPath(objectPath)
	if err != nil {
		return "", err
	}
	if expiresIn <= 0 {
		expiresIn = DefaultSignedURLExpiry
	}

	claims := &urlClaims{
		Path: p,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token pro podepsanou URL nelze vytvorit: %w", err)
	}
	return "/api/files/signed?token=" + url.QueryEscape(token), nil
}

// VerifyToken overi podpis a expiraci tokenu a vrati cestu objektu.
func (s *DiskStore) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &urlClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("neplatna podepisovaci metoda")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("neplatny nebo expirovany token")
	}
	claims, ok := token.Claims.(*urlClaims)
	if !ok || claims.Path == "" {
		return "", errors.New("token neobsahuje cestu objektu")
	}
	return claims.Path, nil
}
