package signer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"amp/errors"
	"amp/hexutil"
	"amp/internal/logging"
)

var log = logging.For("signer")

// mnemonicStorage is the on-disk shape of mnemonic.local.json (spec §6): a
// single "mnemonic" array of space-separated BIP39-style word phrases,
// indexed for consistent test identification.
type mnemonicStorage struct {
	Mnemonic []string `json:"mnemonic"`
}

// wordlist is a small placeholder vocabulary used to fabricate additional
// entries on demand. Real BIP39 wordlist validation and key derivation are
// explicitly out of scope (spec.md §1); amp's signer only needs stable,
// distinct, persisted entries to index into.
var wordlist = []string{
	"abandon", "ability", "absent", "absorb", "abstract", "absurd", "abuse",
	"access", "accident", "account", "accuse", "achieve", "acid", "acoustic",
	"acquire", "across", "act", "action", "actor", "actress", "actual", "adapt",
	"add", "addict", "address", "adjust", "admit", "adult", "advance",
}

// Mnemonic is the file-backed software signer described in spec.md §6 and
// §4.6: an in-memory cache of indexed mnemonic entries guarded by a mutex
// exactly like the teacher's core/mockhsm.HSM.cache/cacheMu, persisted via
// temp-file-then-rename. It always reports a non-mainnet network — this
// store keeps phrases in plain text and is testnet/regtest-only (spec §6).
type Mnemonic struct {
	path string

	mu      sync.Mutex
	entries []string
}

// LoadMnemonic reads path, tolerating a missing or empty file by starting
// with zero entries (spec §6).
func LoadMnemonic(path string) (*Mnemonic, *errors.Error) {
	m := &Mnemonic{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, errors.IO(path, err)
	}
	if len(data) == 0 {
		return m, nil
	}

	var storage mnemonicStorage
	if jerr := json.Unmarshal(data, &storage); jerr != nil {
		return nil, errors.Serde("decoding "+path, jerr)
	}
	m.entries = storage.Mnemonic
	return m, nil
}

// Network always reports a non-mainnet configuration: this signer is
// testnet/regtest-only per spec.md §6.
func (m *Mnemonic) Network() string {
	return "regtest"
}

func (m *Mnemonic) String() string {
	return fmt.Sprintf("mnemonic signer (%s, %d entries)", m.path, len(m.entries))
}

// entryAt returns the mnemonic phrase at index i, generating and persisting
// intermediate entries if i >= len(entries), matching §6's signer_at(i).
func (m *Mnemonic) entryAt(i int) (string, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.entries) <= i {
		phrase, gerr := generatePhrase()
		if gerr != nil {
			return "", gerr
		}
		m.entries = append(m.entries, phrase)
	}

	if perr := m.persistLocked(); perr != nil {
		return "", perr
	}
	return m.entries[i], nil
}

// persistLocked writes the current entries to a temp sibling of m.path and
// renames it into place, per spec §6's atomic-rename write policy. Caller
// must hold m.mu.
func (m *Mnemonic) persistLocked() *errors.Error {
	if m.path == "" {
		return nil
	}
	encoded, jerr := json.MarshalIndent(mnemonicStorage{Mnemonic: m.entries}, "", "  ")
	if jerr != nil {
		return errors.Serde("encoding "+m.path, jerr)
	}

	dir := filepath.Dir(m.path)
	tmp, terr := os.CreateTemp(dir, filepath.Base(m.path)+".tmp-*")
	if terr != nil {
		return errors.IO(m.path, terr)
	}
	tmpName := tmp.Name()
	if _, werr := tmp.Write(encoded); werr != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.IO(m.path, werr)
	}
	if cerr := tmp.Close(); cerr != nil {
		os.Remove(tmpName)
		return errors.IO(m.path, cerr)
	}
	if rerr := os.Rename(tmpName, m.path); rerr != nil {
		os.Remove(tmpName)
		return errors.IO(m.path, rerr)
	}
	return nil
}

func generatePhrase() (string, *errors.Error) {
	words := make([]string, 12)
	for i := range words {
		n, rerr := rand.Int(rand.Reader, big.NewInt(int64(len(wordlist))))
		if rerr != nil {
			return "", errors.IO("reading randomness for mnemonic generation", rerr)
		}
		words[i] = wordlist[n.Int64()]
	}
	return strings.Join(words, " "), nil
}

// SignAt signs unsignedHex using the entry at index i, generating one if
// necessary (§6's signer_at(i)). Real key derivation is out of scope (spec
// §1); the phrase is used only as deterministic key material for a
// placeholder signature appended to the input, exactly the shape the
// reference's MockSigner.new_success uses
// (original_source/tests/transaction_construction.rs: `format!("{}deadbeef...")`).
func (m *Mnemonic) SignAt(ctx context.Context, i int, unsignedHex string) (string, error) {
	if derr := hexutil.Validate(unsignedHex); derr != nil {
		return "", derr
	}

	phrase, eerr := m.entryAt(i)
	if eerr != nil {
		return "", eerr
	}

	sig := pseudoSignature(phrase, unsignedHex)
	signed := unsignedHex + sig
	log.Debug("signed transaction", "index", i, "unsigned_len", len(unsignedHex), "signed_len", len(signed))
	return signed, nil
}

// SignTransaction satisfies the Signer interface using the primary (index
// 0) entry.
func (m *Mnemonic) SignTransaction(ctx context.Context, unsignedHex string) (string, error) {
	return m.SignAt(ctx, 0, unsignedHex)
}

var _ Signer = (*Mnemonic)(nil)

func pseudoSignature(phrase, unsignedHex string) string {
	sum := 0
	for _, r := range phrase {
		sum += int(r)
	}
	return hex.EncodeToString([]byte(fmt.Sprintf("sig%08x", sum)))
}
