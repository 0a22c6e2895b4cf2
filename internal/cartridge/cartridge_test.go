package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreboy/gbz80/internal/mbc"
)

// buildROM creates a minimal valid ROM image of the given size with a
// correct header checksum for the given title/type/size codes.
func buildROM(size int, title string, cartType, romSizeCode, ramSizeCode byte) []byte {
	data := make([]byte, size)
	copy(data[titleAddress:titleAddress+titleLength], title)
	data[cartridgeTypeAddress] = cartType
	data[romSizeAddress] = romSizeCode
	data[ramSizeAddress] = ramSizeCode
	data[headerChecksumAddress] = computeChecksum(data)
	return data
}

func TestLoad_romOnly(t *testing.T) {
	data := buildROM(0x8000, "TESTROM", byte(TypeROMOnly), 0x00, 0x00)

	cart, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, "TESTROM", cart.Header.Title)
	assert.True(t, cart.Header.ChecksumOK)
	assert.Equal(t, 2, cart.Header.ROMBanks)
	assert.IsType(t, &mbc.None{}, cart.MBC)
}

func TestLoad_mbc1(t *testing.T) {
	data := buildROM(0x40000, "BANKED", byte(TypeMBC1RAM), 0x03, 0x02)

	cart, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 8*1024, cart.Header.RAMSize)
	assert.Equal(t, 16, cart.Header.ROMBanks)
	assert.IsType(t, &mbc.MBC1{}, cart.MBC)
}

func TestLoad_checksumMismatchRecovers(t *testing.T) {
	data := buildROM(0x8000, "BAD", byte(TypeROMOnly), 0x00, 0x00)
	data[headerChecksumAddress] ^= 0xFF // corrupt it

	cart, err := Load(data)
	require.NoError(t, err, "checksum mismatch must not be fatal")
	assert.False(t, cart.Header.ChecksumOK)
}

func TestLoad_unsupportedMBC(t *testing.T) {
	data := buildROM(0x8000, "MBC5GAME", 0x19, 0x00, 0x00) // MBC5, unsupported

	_, err := Load(data)
	require.Error(t, err)
}

func TestLoad_tooSmall(t *testing.T) {
	_, err := Load(make([]byte, 0x10))
	require.Error(t, err)
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "(untitled)", cleanTitle(make([]byte, 16)))
	assert.Equal(t, "POKEMON", cleanTitle(append([]byte("POKEMON"), make([]byte, 9)...)))
}
