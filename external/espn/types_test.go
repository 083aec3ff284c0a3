package espn

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestScoreUnmarshal_AcceptsAllWireShapes(t *testing.T) {
	t.Parallel()

	var fromNumber Score
	if err := sonic.Unmarshal([]byte(`24`), &fromNumber); err != nil {
		t.Fatalf("number: %v", err)
	}
	if !fromNumber.Known || fromNumber.Value != 24 {
		t.Fatalf("number not parsed: %+v", fromNumber)
	}

	var fromString Score
	if err := sonic.Unmarshal([]byte(`"17"`), &fromString); err != nil {
		t.Fatalf("string: %v", err)
	}
	if !fromString.Known || fromString.Value != 17 || fromString.Display != "17" {
		t.Fatalf("string not parsed: %+v", fromString)
	}

	var fromObject Score
	if err := sonic.Unmarshal([]byte(`{"value":21,"displayValue":"21"}`), &fromObject); err != nil {
		t.Fatalf("object: %v", err)
	}
	if !fromObject.Known || fromObject.Value != 21 {
		t.Fatalf("object not parsed: %+v", fromObject)
	}

	var fromRef Score
	if err := sonic.Unmarshal([]byte(`{"$ref":"http://x/score"}`), &fromRef); err != nil {
		t.Fatalf("ref: %v", err)
	}
	if !fromRef.isRef() {
		t.Fatalf("ref shape must stay a reference: %+v", fromRef)
	}
	if fromNumber.isRef() || fromString.isRef() || fromObject.isRef() {
		t.Fatal("resolved scores must not report as references")
	}
}

func TestTeamOddsMoneyline_KeyPrecedence(t *testing.T) {
	t.Parallel()

	var both TeamOdds
	if err := sonic.Unmarshal([]byte(`{"moneyLine":-150,"moneyline":9000}`), &both); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if line, ok := both.Moneyline(); !ok || line != -150 {
		t.Fatalf("camel-case key must win: %d %v", line, ok)
	}

	var lowerOnly TeamOdds
	if err := sonic.Unmarshal([]byte(`{"moneyline":130}`), &lowerOnly); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if line, ok := lowerOnly.Moneyline(); !ok || line != 130 {
		t.Fatalf("lowercase fallback failed: %d %v", line, ok)
	}

	// The first present key wins even when its value is unusable.
	var poisoned TeamOdds
	if err := sonic.Unmarshal([]byte(`{"moneyLine":"EVEN","moneyline":110}`), &poisoned); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := poisoned.Moneyline(); ok {
		t.Fatal("unparsable first key must not fall through to the second")
	}

	var stringLine TeamOdds
	if err := sonic.Unmarshal([]byte(`{"moneyLine":"-240"}`), &stringLine); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if line, ok := stringLine.Moneyline(); !ok || line != -240 {
		t.Fatalf("numeric string must parse: %d %v", line, ok)
	}
}

func TestOddsSourceUnmarshal_ArrayAndRefShapes(t *testing.T) {
	t.Parallel()

	var inline OddsSource
	if err := sonic.Unmarshal([]byte(`[{"details":"KC -6.5"}]`), &inline); err != nil {
		t.Fatalf("array shape: %v", err)
	}
	if len(inline.Entries) != 1 || inline.Entries[0].Details != "KC -6.5" {
		t.Fatalf("array entries not parsed: %+v", inline)
	}

	var deferred OddsSource
	if err := sonic.Unmarshal([]byte(`{"$ref":"http://x/odds"}`), &deferred); err != nil {
		t.Fatalf("ref shape: %v", err)
	}
	if deferred.Ref != "http://x/odds" || len(deferred.Entries) != 0 {
		t.Fatalf("ref shape not parsed: %+v", deferred)
	}
}

func TestOddsEntryDetailSource_PrefersFirstItem(t *testing.T) {
	t.Parallel()

	nested := &OddsEntry{Details: "inner"}
	entry := &OddsEntry{Details: "outer", Items: []*OddsEntry{nested}}
	if entry.detailSource() != nested {
		t.Fatal("items[0] must be the detail source when present")
	}

	flat := &OddsEntry{Details: "outer"}
	if flat.detailSource() != flat {
		t.Fatal("entry itself is the detail source without items")
	}
}

func TestFlatMoneylineTargetID(t *testing.T) {
	t.Parallel()

	byID := &FlatMoneyline{TeamID: "12"}
	if got := byID.targetID(); got != "12" {
		t.Fatalf("teamId field must win: %s", got)
	}

	byTeamRef := &FlatMoneyline{Team: &Team{Ref: "http://x/teams/25?lang=en"}}
	if got := byTeamRef.targetID(); got != "25" {
		t.Fatalf("ref tail extraction failed: %s", got)
	}
}

func TestMergeTeam_NeverErasesKnownFields(t *testing.T) {
	t.Parallel()

	dst := &Team{Ref: "http://x/teams/12", ID: "12", Abbreviation: "KC"}
	mergeTeam(dst, &Team{DisplayName: "Kansas City Chiefs", Abbreviation: ""})

	if dst.ID != "12" || dst.Abbreviation != "KC" {
		t.Fatalf("known fields were erased: %+v", dst)
	}
	if dst.DisplayName != "Kansas City Chiefs" {
		t.Fatalf("new field was not merged: %+v", dst)
	}
}

func TestPatchTotalRecord_RewritesInsteadOfDuplicating(t *testing.T) {
	t.Parallel()

	team := &Team{Records: []*Record{{Type: "total", Summary: "0-0"}}}
	patchTotalRecord(team, "5-2")
	if len(team.Records) != 1 || team.Records[0].Summary != "5-2" {
		t.Fatalf("total record must be rewritten in place: %+v", team.Records)
	}

	empty := &Team{}
	patchTotalRecord(empty, "3-4")
	if len(empty.Records) != 1 || empty.Records[0].Summary != "3-4" {
		t.Fatalf("missing total record must be created: %+v", empty.Records)
	}

	patchTotalRecord(empty, "")
	if empty.Records[0].Summary != "3-4" {
		t.Fatal("empty summary must not overwrite a known record")
	}
}
