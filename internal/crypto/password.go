package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrPasswordMismatch возвращается, если пароль не совпадает с хешем
var ErrPasswordMismatch = errors.New("password does not match")

// Params - параметры Argon2id
type Params struct {
	Time    uint32 // количество итераций (time cost)
	Memory  uint32 // объем памяти в KB
	Threads uint8  // количество параллельных потоков
	KeyLen  uint32 // длина выходного ключа в байтах
	SaltLen int    // размер соли в байтах
}

// DefaultParams соответствуют рекомендациям для интерактивного входа
var DefaultParams = Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 32,
}

// FastParams are cheap parameters for tests and low-resource machines.
var FastParams = Params{
	Time:    1,
	Memory:  8 * 1024,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

// PasswordHash - разобранный хеш в формате PHC:
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>
// Параметры хранятся вместе с хешем, поэтому проверка не зависит от
// текущих настроек Hasher.
type PasswordHash struct {
	Salt    []byte
	Key     []byte
	Time    uint32
	Memory  uint32
	Threads uint8
}

// String кодирует хеш в PHC-строку (base64 без паддинга).
func (p *PasswordHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(p.Salt),
		base64.RawStdEncoding.EncodeToString(p.Key))
}

// ParsePasswordHash разбирает PHC-строку, созданную Hasher.Hash.
func ParsePasswordHash(encoded string) (*PasswordHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("stored hash is malformed")
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("unsupported hash algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("failed to parse hash version: %w", err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var p PasswordHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return nil, fmt.Errorf("failed to parse hash params: %w", err)
	}
	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return nil, fmt.Errorf("hash params must be positive")
	}

	var err error
	if p.Salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if p.Key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("failed to decode hash: %w", err)
	}
	if len(p.Salt) == 0 || len(p.Key) == 0 {
		return nil, fmt.Errorf("stored hash is incomplete")
	}

	return &p, nil
}

// Hasher хеширует и проверяет пароли через Argon2id.
type Hasher struct {
	params Params
}

// NewHasher creates a Hasher with the given parameters.
func NewHasher(params Params) *Hasher {
	return &Hasher{params: params}
}

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Hash генерирует новую соль и возвращает PHC-строку
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	salt, err := GenerateSalt(h.params.SaltLen)
	if err != nil {
		return "", err
	}

	stored := &PasswordHash{
		Salt:    salt,
		Key:     h.derive(password, salt),
		Time:    h.params.Time,
		Memory:  h.params.Memory,
		Threads: h.params.Threads,
	}
	return stored.String(), nil
}

// Verify проверяет пароль против сохраненной PHC-строки с ее собственными
// параметрами. Сравнение выполняется за постоянное время.
func (h *Hasher) Verify(password, encoded string) error {
	stored, err := ParsePasswordHash(encoded)
	if err != nil {
		return err
	}

	computed := argon2.IDKey([]byte(password), stored.Salt, stored.Time, stored.Memory, stored.Threads, uint32(len(stored.Key)))

	if subtle.ConstantTimeCompare(computed, stored.Key) != 1 {
		return ErrPasswordMismatch
	}

	return nil
}

// Burn spends the same work as Verify without comparing anything. Used when
// the account does not exist so that timing does not reveal it.
func (h *Hasher) Burn(password string) {
	salt := make([]byte, h.params.SaltLen)
	_ = h.derive(password, salt)
}

func (h *Hasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
}
