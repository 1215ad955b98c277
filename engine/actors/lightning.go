package actors

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"copt/engine/library"
	"github.com/fiatjaf/go-lnurl"
)

// NormalizeWalletRef checks the external wallet reference of a resident. Lightning addresses and
// bech32 LNURLs must parse; anything else is kept as an opaque reference as long as it is a
// single printable token.
func NormalizeWalletRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if len(ref) == 0 {
		return "", fmt.Errorf("%w: empty", library.ErrInvalidWallet)
	}
	if strings.HasPrefix(strings.ToLower(ref), "lnurl") {
		if _, err := lnurl.LNURLDecode(ref); err != nil {
			return "", fmt.Errorf("%w: %s", library.ErrInvalidWallet, err.Error())
		}
		return strings.ToLower(ref), nil
	}
	if strings.Contains(ref, "@") {
		addr, err := mail.ParseAddress(ref)
		if err != nil {
			return "", fmt.Errorf("%w: %s", library.ErrInvalidWallet, err.Error())
		}
		return strings.Trim(addr.Address, "<>"), nil
	}
	for _, r := range ref {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w: %q contains whitespace or control characters", library.ErrInvalidWallet, ref)
		}
	}
	return ref, nil
}

// WalletPayURL resolves a wallet reference to its LNURL-pay endpoint. Opaque references have none.
func WalletPayURL(ref string) (string, bool) {
	if strings.HasPrefix(strings.ToLower(ref), "lnurl") {
		decoded, err := lnurl.LNURLDecode(ref)
		if err != nil {
			LogCLI(err, 2)
			return "", false
		}
		return decoded, true
	}
	if strings.Contains(ref, "@") {
		url, err := lud16ToUrl(ref)
		if err != nil {
			LogCLI(err, 2)
			return "", false
		}
		return url, true
	}
	return "", false
}

// Lud16ToLud06 encodes a lightning address as the bech32 LNURL wallets scan.
func Lud16ToLud06(lud16 string) (string, bool) {
	url, err := lud16ToUrl(lud16)
	if err != nil {
		LogCLI(err, 2)
		return "", false
	}
	encodedUrl, err := lnurl.Encode(url)
	if err != nil {
		LogCLI(err, 1)
		return "", false
	}
	return encodedUrl, true
}

func lud16ToUrl(address string) (s string, e error) {
	split := strings.Split(address, "@")
	if len(split) != 2 || len(split[0]) == 0 || len(split[1]) == 0 {
		return "", fmt.Errorf("invalid lightning address %q", address)
	}
	return "https://" + strings.Trim(split[1], "<>") + "/.well-known/lnurlp/" + strings.Trim(split[0], "<>"), nil
}

func LogCLI(message interface{}, level int) {
	library.LogCLI(message, level)
}
