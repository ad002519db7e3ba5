// Package consensus demonstrates the FieldCodec schema-registration
// surface (github.com/eth2030/sszcore/ssz) against a handful of real
// beacon-chain container types: Checkpoint, Fork, Validator, Withdrawal,
// the EIP-4895 BLSToExecutionChange message pair, SyncAggregate, and
// Attestation. Each type declares its fields once via NewXxx-style
// field-slice builders and gets MarshalSSZ/UnmarshalSSZ/HashTreeRoot for
// free from the container codec.
package consensus

import (
	"github.com/eth2030/sszcore/ssz"
)

// Every container type in this package implements the full codec surface.
var (
	_ ssz.SSZValue = (*Checkpoint)(nil)
	_ ssz.SSZValue = (*Fork)(nil)
	_ ssz.SSZValue = (*Validator)(nil)
	_ ssz.SSZValue = (*Withdrawal)(nil)
	_ ssz.SSZValue = (*WithdrawalList)(nil)
	_ ssz.SSZValue = (*BLSToExecutionChange)(nil)
	_ ssz.SSZValue = (*SignedBLSToExecutionChange)(nil)
	_ ssz.SSZValue = (*SyncAggregate)(nil)
	_ ssz.SSZValue = (*Attestation)(nil)
)

// Root is a 32-byte Merkle root or similarly-sized opaque digest.
type Root [32]byte

// Address is a 20-byte execution-layer address.
type Address [20]byte

// BLSPubkey is a 48-byte compressed BLS public key.
type BLSPubkey [48]byte

// BLSSignature is a 96-byte BLS signature.
type BLSSignature [96]byte

// Epoch indexes a span of slots in the beacon chain.
type Epoch uint64

// ValidatorIndex indexes the validator registry.
type ValidatorIndex uint64

// Gwei is an amount denominated in Gwei (10^-9 ETH).
type Gwei uint64

// WithdrawalIndex indexes a withdrawal within the canonical chain.
type WithdrawalIndex uint64

// --- Checkpoint ---

// Checkpoint identifies a specific epoch boundary block, used for
// attestation targets and finality tracking.
type Checkpoint struct {
	Epoch Epoch
	Root  Root
}

func (c *Checkpoint) fields() []ssz.FieldCodec {
	epoch := uint64(c.Epoch)
	root := c.Root[:]
	return []ssz.FieldCodec{
		ssz.Uint64Field("epoch", &epoch),
		ssz.ByteVectorField("root", &root, 32),
	}
}

// syncFrom copies the boxed locals Unmarshal wrote through into the typed
// struct fields.
func (c *Checkpoint) syncFrom(epoch uint64, root []byte) {
	c.Epoch = Epoch(epoch)
	copy(c.Root[:], root)
}

// SizeSSZ returns the fixed encoded size of a Checkpoint (40 bytes).
func (c *Checkpoint) SizeSSZ() int { return 40 }

// MarshalSSZ serializes the checkpoint as a fixed-size container.
func (c *Checkpoint) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(c.fields())
}

// UnmarshalSSZ deserializes a checkpoint from its fixed-size container encoding.
func (c *Checkpoint) UnmarshalSSZ(data []byte) error {
	var epoch uint64
	var root []byte
	fields := []ssz.FieldCodec{
		ssz.Uint64Field("epoch", &epoch),
		ssz.ByteVectorField("root", &root, 32),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	c.syncFrom(epoch, root)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the checkpoint.
func (c *Checkpoint) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(c.fields())
}

// --- Fork ---

// Fork records the current and previous fork-version bytes active at a
// given epoch, used to domain-separate signatures across upgrades.
type Fork struct {
	PreviousVersion [4]byte
	CurrentVersion  [4]byte
	Epoch           Epoch
}

func (f *Fork) fields() []ssz.FieldCodec {
	prev := f.PreviousVersion[:]
	curr := f.CurrentVersion[:]
	epoch := uint64(f.Epoch)
	return []ssz.FieldCodec{
		ssz.ByteVectorField("previous_version", &prev, 4),
		ssz.ByteVectorField("current_version", &curr, 4),
		ssz.Uint64Field("epoch", &epoch),
	}
}

// SizeSSZ returns the fixed encoded size of a Fork (16 bytes).
func (f *Fork) SizeSSZ() int { return 16 }

// MarshalSSZ serializes the fork as a fixed-size container.
func (f *Fork) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(f.fields())
}

// UnmarshalSSZ deserializes a fork from its fixed-size container encoding.
func (f *Fork) UnmarshalSSZ(data []byte) error {
	var prev, curr []byte
	var epoch uint64
	fields := []ssz.FieldCodec{
		ssz.ByteVectorField("previous_version", &prev, 4),
		ssz.ByteVectorField("current_version", &curr, 4),
		ssz.Uint64Field("epoch", &epoch),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	copy(f.PreviousVersion[:], prev)
	copy(f.CurrentVersion[:], curr)
	f.Epoch = Epoch(epoch)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the fork.
func (f *Fork) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(f.fields())
}

// --- Validator ---

// Validator is a registry entry describing one staking participant.
type Validator struct {
	Pubkey                     BLSPubkey
	WithdrawalCredentials      Root
	EffectiveBalance           Gwei
	Slashed                    bool
	ActivationEligibilityEpoch Epoch
	ActivationEpoch            Epoch
	ExitEpoch                  Epoch
	WithdrawableEpoch          Epoch
}

func (v *Validator) fields() []ssz.FieldCodec {
	pubkey := v.Pubkey[:]
	creds := v.WithdrawalCredentials[:]
	balance := uint64(v.EffectiveBalance)
	activationEligibility := uint64(v.ActivationEligibilityEpoch)
	activation := uint64(v.ActivationEpoch)
	exit := uint64(v.ExitEpoch)
	withdrawable := uint64(v.WithdrawableEpoch)
	return []ssz.FieldCodec{
		ssz.BLSPubkeyField("pubkey", &pubkey),
		ssz.ByteVectorField("withdrawal_credentials", &creds, 32),
		ssz.Uint64Field("effective_balance", &balance),
		ssz.BoolField("slashed", &v.Slashed),
		ssz.Uint64Field("activation_eligibility_epoch", &activationEligibility),
		ssz.Uint64Field("activation_epoch", &activation),
		ssz.Uint64Field("exit_epoch", &exit),
		ssz.Uint64Field("withdrawable_epoch", &withdrawable),
	}
}

// SizeSSZ returns the fixed encoded size of a Validator (121 bytes).
func (v *Validator) SizeSSZ() int { return 48 + 32 + 8 + 1 + 8*4 }

// MarshalSSZ serializes the validator as a fixed-size container.
func (v *Validator) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(v.fields())
}

// UnmarshalSSZ deserializes a validator from its fixed-size container encoding.
func (v *Validator) UnmarshalSSZ(data []byte) error {
	var pubkey, creds []byte
	var balance, activationEligibility, activation, exit, withdrawable uint64
	fields := []ssz.FieldCodec{
		ssz.BLSPubkeyField("pubkey", &pubkey),
		ssz.ByteVectorField("withdrawal_credentials", &creds, 32),
		ssz.Uint64Field("effective_balance", &balance),
		ssz.BoolField("slashed", &v.Slashed),
		ssz.Uint64Field("activation_eligibility_epoch", &activationEligibility),
		ssz.Uint64Field("activation_epoch", &activation),
		ssz.Uint64Field("exit_epoch", &exit),
		ssz.Uint64Field("withdrawable_epoch", &withdrawable),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	copy(v.Pubkey[:], pubkey)
	copy(v.WithdrawalCredentials[:], creds)
	v.EffectiveBalance = Gwei(balance)
	v.ActivationEligibilityEpoch = Epoch(activationEligibility)
	v.ActivationEpoch = Epoch(activation)
	v.ExitEpoch = Epoch(exit)
	v.WithdrawableEpoch = Epoch(withdrawable)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the validator.
func (v *Validator) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(v.fields())
}

// --- Withdrawal (EIP-4895) ---

// Withdrawal represents a single validator withdrawal credited within an
// execution payload.
type Withdrawal struct {
	Index          WithdrawalIndex
	ValidatorIndex ValidatorIndex
	Address        Address
	Amount         Gwei
}

func (w *Withdrawal) fields() []ssz.FieldCodec {
	index := uint64(w.Index)
	validatorIndex := uint64(w.ValidatorIndex)
	address := w.Address[:]
	amount := uint64(w.Amount)
	return []ssz.FieldCodec{
		ssz.Uint64Field("index", &index),
		ssz.Uint64Field("validator_index", &validatorIndex),
		ssz.AddressField("address", &address),
		ssz.Uint64Field("amount", &amount),
	}
}

// WithdrawalSSZSize is the fixed encoded size of a Withdrawal (44 bytes).
const WithdrawalSSZSize = 8 + 8 + 20 + 8

// SizeSSZ returns the fixed encoded size of a Withdrawal.
func (w *Withdrawal) SizeSSZ() int { return WithdrawalSSZSize }

// MarshalSSZ serializes the withdrawal as a fixed-size container.
func (w *Withdrawal) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(w.fields())
}

// UnmarshalSSZ deserializes a withdrawal from its fixed-size container encoding.
func (w *Withdrawal) UnmarshalSSZ(data []byte) error {
	var index, validatorIndex, amount uint64
	var address []byte
	fields := []ssz.FieldCodec{
		ssz.Uint64Field("index", &index),
		ssz.Uint64Field("validator_index", &validatorIndex),
		ssz.AddressField("address", &address),
		ssz.Uint64Field("amount", &amount),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	w.Index = WithdrawalIndex(index)
	w.ValidatorIndex = ValidatorIndex(validatorIndex)
	copy(w.Address[:], address)
	w.Amount = Gwei(amount)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the withdrawal.
func (w *Withdrawal) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(w.fields())
}

// MaxWithdrawalsPerPayload is the SSZ list limit for the withdrawals field
// of an execution payload.
const MaxWithdrawalsPerPayload = 16

// WithdrawalList is List[Withdrawal, MaxWithdrawalsPerPayload].
type WithdrawalList []*Withdrawal

// SizeSSZ returns the total encoded size of the withdrawal list.
func (wl WithdrawalList) SizeSSZ() int { return len(wl) * WithdrawalSSZSize }

// MarshalSSZ serializes the withdrawal list. Withdrawal is fixed-size, so
// the list is a straight encode of elements with a limit check, delegated
// to ssz.MarshalList.
func (wl WithdrawalList) MarshalSSZ() ([]byte, error) {
	elements := make([][]byte, len(wl))
	for i, w := range wl {
		enc, err := w.MarshalSSZ()
		if err != nil {
			return nil, err
		}
		elements[i] = enc
	}
	return ssz.MarshalList(elements, MaxWithdrawalsPerPayload)
}

// UnmarshalSSZ deserializes a withdrawal list from SSZ bytes, delegating the
// element-count and limit bookkeeping to ssz.UnmarshalList.
func (wl *WithdrawalList) UnmarshalSSZ(data []byte) error {
	elements, err := ssz.UnmarshalList(data, WithdrawalSSZSize, MaxWithdrawalsPerPayload)
	if err != nil {
		return err
	}
	out := make([]*Withdrawal, len(elements))
	for i, enc := range elements {
		w := &Withdrawal{}
		if err := w.UnmarshalSSZ(enc); err != nil {
			return err
		}
		out[i] = w
	}
	*wl = out
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the withdrawal list as
// List[Withdrawal, MaxWithdrawalsPerPayload].
func (wl WithdrawalList) HashTreeRoot() ([32]byte, error) {
	roots := make([][32]byte, len(wl))
	for i, w := range wl {
		root, err := w.HashTreeRoot()
		if err != nil {
			return [32]byte{}, err
		}
		roots[i] = root
	}
	return ssz.HashTreeRootList(roots, MaxWithdrawalsPerPayload), nil
}

// --- BLSToExecutionChange (EIP-4895) ---

// BLSToExecutionChange requests that a validator's withdrawal credentials
// be switched from a BLS key to an execution-layer address.
type BLSToExecutionChange struct {
	ValidatorIndex  ValidatorIndex
	FromBLSPubkey   BLSPubkey
	ToExecutionAddr Address
}

func (m *BLSToExecutionChange) fields() []ssz.FieldCodec {
	validatorIndex := uint64(m.ValidatorIndex)
	fromPubkey := m.FromBLSPubkey[:]
	toAddr := m.ToExecutionAddr[:]
	return []ssz.FieldCodec{
		ssz.Uint64Field("validator_index", &validatorIndex),
		ssz.BLSPubkeyField("from_bls_pubkey", &fromPubkey),
		ssz.AddressField("to_execution_address", &toAddr),
	}
}

// SizeSSZ returns the fixed encoded size of a BLSToExecutionChange (76 bytes).
func (m *BLSToExecutionChange) SizeSSZ() int { return 8 + 48 + 20 }

// MarshalSSZ serializes the message as a fixed-size container.
func (m *BLSToExecutionChange) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(m.fields())
}

// UnmarshalSSZ deserializes a BLSToExecutionChange from its fixed-size
// container encoding.
func (m *BLSToExecutionChange) UnmarshalSSZ(data []byte) error {
	var validatorIndex uint64
	var fromPubkey, toAddr []byte
	fields := []ssz.FieldCodec{
		ssz.Uint64Field("validator_index", &validatorIndex),
		ssz.BLSPubkeyField("from_bls_pubkey", &fromPubkey),
		ssz.AddressField("to_execution_address", &toAddr),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	m.ValidatorIndex = ValidatorIndex(validatorIndex)
	copy(m.FromBLSPubkey[:], fromPubkey)
	copy(m.ToExecutionAddr[:], toAddr)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the message.
func (m *BLSToExecutionChange) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(m.fields())
}

// SignedBLSToExecutionChange pairs a BLSToExecutionChange with its BLS
// signature.
type SignedBLSToExecutionChange struct {
	Message   BLSToExecutionChange
	Signature BLSSignature
}

// SizeSSZ returns the fixed encoded size of a SignedBLSToExecutionChange.
func (s *SignedBLSToExecutionChange) SizeSSZ() int {
	return s.Message.SizeSSZ() + 96
}

// MarshalSSZ serializes the signed message as a fixed-size container,
// nesting the message as an ObjectField.
func (s *SignedBLSToExecutionChange) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(s.fields())
}

func (s *SignedBLSToExecutionChange) fields() []ssz.FieldCodec {
	sig := s.Signature[:]
	return []ssz.FieldCodec{
		ssz.ObjectField("message", &s.Message, true, s.Message.SizeSSZ()),
		ssz.BLSSignatureField("signature", &sig),
	}
}

// UnmarshalSSZ deserializes a signed message from its fixed-size container
// encoding.
func (s *SignedBLSToExecutionChange) UnmarshalSSZ(data []byte) error {
	var sig []byte
	fields := []ssz.FieldCodec{
		ssz.ObjectField("message", &s.Message, true, s.Message.SizeSSZ()),
		ssz.BLSSignatureField("signature", &sig),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	copy(s.Signature[:], sig)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the signed message.
func (s *SignedBLSToExecutionChange) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(s.fields())
}

// --- SyncAggregate ---

// SyncCommitteeSize is the fixed bit length of a sync committee
// participation bitvector.
const SyncCommitteeSize = 512

// SyncAggregate records which members of the current sync committee
// co-signed a block, plus the aggregate BLS signature over that block.
type SyncAggregate struct {
	SyncCommitteeBits      ssz.Bitvector
	SyncCommitteeSignature BLSSignature
}

// NewSyncAggregate returns a SyncAggregate with a zeroed, correctly sized
// participation bitvector.
func NewSyncAggregate() *SyncAggregate {
	bits, _ := ssz.NewBitvector(SyncCommitteeSize)
	return &SyncAggregate{SyncCommitteeBits: bits}
}

func (a *SyncAggregate) fields() []ssz.FieldCodec {
	sig := a.SyncCommitteeSignature[:]
	return []ssz.FieldCodec{
		ssz.BitvectorField("sync_committee_bits", &a.SyncCommitteeBits, SyncCommitteeSize),
		ssz.BLSSignatureField("sync_committee_signature", &sig),
	}
}

// SizeSSZ returns the fixed encoded size of a SyncAggregate.
func (a *SyncAggregate) SizeSSZ() int { return SyncCommitteeSize/8 + 96 }

// MarshalSSZ serializes the aggregate as a fixed-size container.
func (a *SyncAggregate) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(a.fields())
}

// UnmarshalSSZ deserializes a SyncAggregate from its fixed-size container
// encoding.
func (a *SyncAggregate) UnmarshalSSZ(data []byte) error {
	var sig []byte
	fields := []ssz.FieldCodec{
		ssz.BitvectorField("sync_committee_bits", &a.SyncCommitteeBits, SyncCommitteeSize),
		ssz.BLSSignatureField("sync_committee_signature", &sig),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	copy(a.SyncCommitteeSignature[:], sig)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the sync aggregate.
func (a *SyncAggregate) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(a.fields())
}

// --- Attestation ---

// AttestationData identifies the slot, committee, and checkpoints an
// attestation votes for.
type AttestationData struct {
	Slot            uint64
	Index           uint64
	BeaconBlockRoot Root
	Source          Checkpoint
	Target          Checkpoint
}

func (d *AttestationData) fields() []ssz.FieldCodec {
	root := d.BeaconBlockRoot[:]
	return []ssz.FieldCodec{
		ssz.Uint64Field("slot", &d.Slot),
		ssz.Uint64Field("index", &d.Index),
		ssz.ByteVectorField("beacon_block_root", &root, 32),
		ssz.ObjectField("source", &d.Source, true, d.Source.SizeSSZ()),
		ssz.ObjectField("target", &d.Target, true, d.Target.SizeSSZ()),
	}
}

// SizeSSZ returns the fixed encoded size of AttestationData (128 bytes).
func (d *AttestationData) SizeSSZ() int { return 8 + 8 + 32 + d.Source.SizeSSZ() + d.Target.SizeSSZ() }

// MarshalSSZ serializes the attestation data as a fixed-size container.
func (d *AttestationData) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(d.fields())
}

// UnmarshalSSZ deserializes attestation data from its fixed-size container
// encoding.
func (d *AttestationData) UnmarshalSSZ(data []byte) error {
	var root []byte
	fields := []ssz.FieldCodec{
		ssz.Uint64Field("slot", &d.Slot),
		ssz.Uint64Field("index", &d.Index),
		ssz.ByteVectorField("beacon_block_root", &root, 32),
		ssz.ObjectField("source", &d.Source, true, d.Source.SizeSSZ()),
		ssz.ObjectField("target", &d.Target, true, d.Target.SizeSSZ()),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	copy(d.BeaconBlockRoot[:], root)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the attestation data.
func (d *AttestationData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(d.fields())
}

// MaxValidatorsPerCommittee bounds an attestation's aggregation bitlist.
const MaxValidatorsPerCommittee = 2048

// Attestation pairs a committee aggregation bitlist with the data it
// attests to and the aggregate signature over that data.
type Attestation struct {
	AggregationBits ssz.Bitlist
	Data            AttestationData
	Signature       BLSSignature
}

// NewAttestation returns an Attestation with an empty, correctly bounded
// aggregation bitlist.
func NewAttestation() *Attestation {
	bits, _ := ssz.NewBitlist(MaxValidatorsPerCommittee)
	return &Attestation{AggregationBits: bits}
}

func (a *Attestation) fields() []ssz.FieldCodec {
	sig := a.Signature[:]
	return []ssz.FieldCodec{
		ssz.BitlistField("aggregation_bits", &a.AggregationBits, MaxValidatorsPerCommittee),
		ssz.ObjectField("data", &a.Data, true, a.Data.SizeSSZ()),
		ssz.BLSSignatureField("signature", &sig),
	}
}

// SizeSSZ returns the current encoded size of the attestation, including
// the offset word the variable-size aggregation bitlist occupies in the
// fixed prefix.
func (a *Attestation) SizeSSZ() int {
	return ssz.SizeContainer(a.fields())
}

// MarshalSSZ serializes the attestation using the standard container
// offset layout, since AggregationBits is variable-size.
func (a *Attestation) MarshalSSZ() ([]byte, error) {
	return ssz.EncodeContainer(a.fields())
}

// UnmarshalSSZ deserializes an attestation from its container encoding.
func (a *Attestation) UnmarshalSSZ(data []byte) error {
	a.AggregationBits.Limit = MaxValidatorsPerCommittee
	var sig []byte
	fields := []ssz.FieldCodec{
		ssz.BitlistField("aggregation_bits", &a.AggregationBits, MaxValidatorsPerCommittee),
		ssz.ObjectField("data", &a.Data, true, a.Data.SizeSSZ()),
		ssz.BLSSignatureField("signature", &sig),
	}
	if err := ssz.DecodeContainer(data, fields); err != nil {
		return err
	}
	copy(a.Signature[:], sig)
	return nil
}

// HashTreeRoot computes the SSZ hash tree root of the attestation.
func (a *Attestation) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRootFields(a.fields())
}
