package fingerprint_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nodalhq/nodal/internal/core/domain"
	"github.com/nodalhq/nodal/internal/core/ports"
	"github.com/nodalhq/nodal/internal/core/ports/mocks"
	"github.com/nodalhq/nodal/internal/engine/fingerprint"
)

func TestParameters_Deterministic(t *testing.T) {
	values := []domain.Value{
		domain.StringValue("/scenes/robot.usdc"),
		domain.BoolValue(true),
		domain.IntValue(3),
		domain.FloatValue(0.25),
	}

	a := fingerprint.Parameters(values...)
	b := fingerprint.Parameters(values...)
	assert.Equal(t, a, b)
}

func TestParameters_Sensitivity(t *testing.T) {
	base := fingerprint.Parameters(domain.StringValue("a"), domain.BoolValue(true))

	tests := []struct {
		name   string
		values []domain.Value
	}{
		{"changed string", []domain.Value{domain.StringValue("b"), domain.BoolValue(true)}},
		{"changed bool", []domain.Value{domain.StringValue("a"), domain.BoolValue(false)}},
		{"reordered", []domain.Value{domain.BoolValue(true), domain.StringValue("a")}},
		{"dropped field", []domain.Value{domain.StringValue("a")}},
		{"kind swap", []domain.Value{domain.StringValue("a"), domain.StringValue("true")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, fingerprint.Parameters(tt.values...))
		})
	}
}

func TestParameters_NoFieldAliasing(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc".
	a := fingerprint.Parameters(domain.StringValue("ab"), domain.StringValue("c"))
	b := fingerprint.Parameters(domain.StringValue("a"), domain.StringValue("bc"))
	assert.NotEqual(t, a, b)
}

func TestExternal_MetadataOnly(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	info := ports.ResourceInfo{ModTime: t0, Size: 2048}

	same := fingerprint.External("/scenes/robot.usdc", info)
	assert.Equal(t, same, fingerprint.External("/scenes/robot.usdc", info))

	// Each metadata axis is tracked.
	assert.NotEqual(t, same, fingerprint.External("/scenes/other.usdc", info))
	assert.NotEqual(t, same, fingerprint.External("/scenes/robot.usdc", ports.ResourceInfo{ModTime: t0.Add(time.Second), Size: 2048}))
	assert.NotEqual(t, same, fingerprint.External("/scenes/robot.usdc", ports.ResourceInfo{ModTime: t0, Size: 2049}))
}

func TestFromResource_Unavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	res := mocks.NewMockResources(ctrl)
	res.EXPECT().Stat("/missing.usdc").Return(ports.ResourceInfo{}, domain.ErrResourceUnavailable)

	_, err := fingerprint.FromResource(res, "/missing.usdc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResourceUnavailable)
}

func TestDerive_TracksUpstreamVersions(t *testing.T) {
	values := []domain.Value{domain.BoolValue(true)}

	a := fingerprint.Derive(values, []domain.Fingerprint{"x01", "x02"})
	b := fingerprint.Derive(values, []domain.Fingerprint{"x01", "x02"})
	c := fingerprint.Derive(values, []domain.Fingerprint{"x01", "x03"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, fingerprint.Derive(values, nil))
}

func TestFingerprint_Format(t *testing.T) {
	// The two fingerprint kinds carry distinct prefixes so an external
	// fingerprint can never equal a parameter fingerprint.
	p := fingerprint.Parameters(domain.IntValue(1))
	x := fingerprint.External("/a", ports.ResourceInfo{Size: 1})
	assert.Regexp(t, "^p[0-9a-f]{16}$", string(p))
	assert.Regexp(t, "^x[0-9a-f]{16}$", string(x))
}
