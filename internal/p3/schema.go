package p3

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/strata/internal/btrieve"
)

// Table type codes used by the reconstructor.
const (
	TableHeader      = "DIR"
	TableResources   = "RLB"
	TableWBS         = "STR"
	TableWBSXref     = "WBS"
	TableActivities  = "ACT"
	TableRelations   = "REL"
	TableAssignments = "RES"
)

var (
	shortCol = btrieve.ShortColumn
	intCol   = btrieve.IntColumn
	byteCol  = btrieve.ByteColumn
	textCol  = btrieve.StringColumn
	dateCol  = btrieve.DateColumn
)

var ac2Columns = []btrieve.Column{
	textCol("UNKNOWN_1", 2, 4),
	textCol("UNKNOWN_2", 6, 8),
	shortCol("UNKNOWN_3", 14),
	shortCol("UNKNOWN_4", 16),
	textCol("UNKNOWN_5", 18, 4),
	textCol("UNKNOWN_6", 26, 8),
}

var accColumns = []btrieve.Column{
	textCol("COST_ACCOUNT_NUMBER", 2, 12),
	textCol("UNDEFINED_1", 14, 4),
	textCol("ACC_TITLE", 18, 40),
}

var actColumns = []btrieve.Column{
	textCol("ACTIVITY_ID", 2, 10),
	textCol("UNDEFINED_1", 12, 2),
	btrieve.DurationColumn("FREE_FLOAT", 14),
	shortCol("CALENDAR_ID", 16),
	intCol("DURATION_CALC_CODE", 18),
	btrieve.DurationColumn("ORIGINAL_DURATION", 22),
	btrieve.DurationColumn("REMAINING_DURATION", 24),
	shortCol("ACTUAL_START_OR_CONSTRAINT_FLAG", 26),
	shortCol("ACTUAL_FINISH_OR_CONSTRAINT_FLAG", 28),
	btrieve.PercentColumn("PERCENT_COMPLETE", 30),
	dateCol("EARLY_START_INTERNAL", 34),
	dateCol("LATE_START_INTERNAL", 38),
	dateCol("AS_OR_ED_CONSTRAINT", 42),
	dateCol("AF_OR_LD_CONSTRAINT", 46),
	dateCol("EF_INTERNAL", 50),
	dateCol("LF_INTERNAL", 54),
	btrieve.DurationColumn("TOTAL_FLOAT", 58),
	textCol("MILESTONE", 60, 1),
	textCol("CRITICAL_FLAG", 61, 1),
	textCol("UNDEFINED_4", 62, 8),
	byteCol("ST_ACTIVITY_TYPE", 70),
	byteCol("LEVELING_TYPE", 71),
	textCol("UNDEFINED_5B", 72, 2),
	textCol("DEPT", 74, 3),
	textCol("RESP", 77, 5),
	textCol("PHAS", 82, 5),
	textCol("STEP", 87, 5),
	textCol("ITEM", 92, 5),
	textCol("UNDEFINED_6", 97, 41),
	textCol("ACTIVITY_TITLE", 138, 48),
	intCol("SUSPEND_DATE", 186),
	intCol("RESUME_DATE", 190),
	intCol("UNDEFINED_8A", 194),
	intCol("UNDEFINED_8B", 198),
	intCol("UNDEFINED_8C", 202),
	intCol("UNDEFINED_8D", 206),
	intCol("UNDEFINED_8E", 210),
	btrieve.BtrieveDateColumn("EARLY_START", 214),
	btrieve.BtrieveDateColumn("LATE_START", 218),
	btrieve.BtrieveDateColumn("EARLY_FINISH", 222),
	btrieve.BtrieveDateColumn("LATE_FINISH", 226),
	byteCol("EARLY_START_HOUR", 230),
	byteCol("LATE_START_HOUR", 231),
	byteCol("EARLY_FINISH_HOUR", 232),
	byteCol("LATE_FINISH_HOUR", 233),
	textCol("ACTUAL_START_FLAG", 234, 1),
	textCol("ACTUAL_FINISH_FLAG", 235, 1),
	textCol("UNDEFINED_10", 236, 10),
}

var dirColumns = slices.Concat([]btrieve.Column{
	textCol("SUB_PROJECT_NAME", 2, 4),
	intCol("SEQUENCE__NUMBER", 6),
	intCol("PRODUCT_CODE", 10),
	dateCol("PROJECT_START_DATE", 14),
	intCol("HOLIDAY_CONVENTION", 18),
	textCol("SUB_PROJECT_ID", 22, 2),
	textCol("UNDEFINED_1", 24, 2),
	dateCol("PROJECT_FINISH_DATE", 26),
	intCol("REPORT_COUNTER", 30),
	textCol("ACT_CODE_1_TO_4_SIZE", 34, 4),
	textCol("ACT_CODE_5_TO_8_SIZE", 38, 4),
	textCol("ACT_CODE_9_TO_12_SIZE", 42, 4),
	textCol("ACT_CODE_13_TO_16_SIZE", 46, 4),
	textCol("ACT_CODE_17_TO_20_SIZE", 50, 4),
	textCol("ACT_ID_CODE_1_TO_4_SIZE", 54, 4),
	intCol("PROJECT_TYPE", 58),
	dateCol("CURRENT_DATA_DATE", 62),
	dateCol("CALENDAR_START_DATE", 66),
	textCol("UNDEFINED_2", 70, 4),
	textCol("COMPANY_TITLE", 74, 36),
	textCol("PROJECT_TITLE", 110, 36),
	textCol("REPORT_TITLE", 146, 48),
	textCol("PROJECT_VERSION", 194, 16),
	textCol("UNDEFINED_3", 210, 32),
	textCol("AUTO_COST_SET", 242, 4),
	dateCol("AUTO_COST_DATE", 246),
	textCol("AUTO_COST_RULES", 250, 14),
	textCol("UNDEFINED_4", 264, 14),
	intCol("SCHEDULE_LOGIC", 278),
	intCol("INTERRUPTIBLE_FLAG", 282),
	dateCol("LATEST_EARLY_FINISH", 286),
	textCol("TARGET_1_NAME", 290, 4),
	textCol("UNDEFINED_5", 294, 4),
	textCol("TARGET_2_NAME", 298, 4),
	textCol("UNDEFINED_6", 302, 4),
	shortCol("LEVELED_SWITCH", 306),
	shortCol("TOTAL_FLOAT_TYPE", 308),
	textCol("UNDEFINED_7", 310, 4),
	shortCol("START_DAY_OF_WEEK", 314),
	textCol("UNDEFINED_8", 316, 2),
	shortCol("MASTER_CALENDAR_TYPE", 318),
	shortCol("MASTER_CALENDAR_TYPE_AUX", 320),
	textCol("GRAPHIC_SUMMARY_PROJECT", 322, 1),
	textCol("SCHED_MAST_SUB_BOTH", 323, 1),
	textCol("DECIMAL_PLACES", 324, 1),
	textCol("UPDATE_SUB_DATA_DATE", 325, 1),
	textCol("SUMMARY_CAL_ID", 326, 1),
	textCol("END_DATE_FROM_MS", 327, 1),
	textCol("SS_LAG_FROM_ASES", 328, 1),
	textCol("UNDEFINED_9", 329, 1),
}, wbsSegmentColumns(330), []btrieve.Column{
	intCol("INTR_PRO_INDEX", 370),
	intCol("INTR_PROJ_LAST_SCED_DATE", 374),
	shortCol("LEVEL_NUM_SPLITS", 378),
	shortCol("LEVEL_SPLIT_NON_WORK", 380),
	shortCol("LEVEL_CONTIG_WORK", 382),
	shortCol("LEVEL_MIN_PCT_UPT", 384),
	shortCol("LEVEL_MAX_PCT_UPT", 386),
	textCol("PROJECT_CODE_01", 388, 10),
	textCol("PROJECT_CODE_02", 398, 10),
	textCol("PROJECT_CODE_03", 408, 10),
	textCol("PROJECT_CODE_04", 418, 10),
	textCol("PROJECT_CODE_05", 428, 10),
	textCol("PROJECT_CODE_06", 438, 10),
	textCol("PROJECT_CODE_07", 448, 10),
	textCol("PROJECT_CODE_08", 458, 10),
	textCol("PROJECT_CODE_09", 468, 10),
	textCol("PROJECT_CODE_10", 478, 10),
	textCol("UNDEFINED_10", 488, 18),
})

// wbsSegmentColumns returns the WBSW_nn width and WBSS_nn separator pairs
// starting at offset.
func wbsSegmentColumns(offset int) []btrieve.Column {
	cols := make([]btrieve.Column, 0, 2*maxWBSSegments)
	for n := 1; n <= maxWBSSegments; n++ {
		cols = append(cols,
			byteCol(wbsWidthColumn(n), offset),
			textCol(wbsSeparatorColumn(n), offset+1, 1),
		)
		offset += 2
	}
	return cols
}

func wbsWidthColumn(n int) string     { return fmt.Sprintf("WBSW_%02d", n) }
func wbsSeparatorColumn(n int) string { return fmt.Sprintf("WBSS_%02d", n) }

var aitColumns = []btrieve.Column{
	textCol("ACT_ID", 2, 10),
	textCol("ACTID_EXT", 12, 2),
	textCol("RES", 14, 8),
	textCol("COST_ACCOUNT_NUMBER", 22, 12),
	textCol("RESOURCE_ID", 34, 1),
	textCol("UNDEFINED_1", 35, 3),
	dateCol("PLANNED_START", 38),
	dateCol("PLANNED_FINISH", 42),
	intCol("APPROVED_CHANGES", 46),
}

var dtlColumns = []btrieve.Column{
	textCol("CODE_NAME", 2, 4),
	textCol("CODE_VALUE", 6, 10),
	textCol("DESCRIPTION", 16, 48),
}

var holColumns = []btrieve.Column{
	shortCol("CAL_ID", 2),
	dateCol("START_OF_HOLIDAY", 4),
	dateCol("END_OF_HOLIDAY", 8),
}

var logColumns = []btrieve.Column{
	textCol("ACT_ID", 2, 10),
	textCol("ACT_ID_EXT", 12, 2),
	shortCol("LOG_SEQ_NUMBER", 14),
	textCol("LOG_MASK", 16, 2),
	textCol("LOG_RECORD_INFO", 18, 48),
}

var relColumns = []btrieve.Column{
	textCol("PREDECESSOR_ACTIVITY_ID", 2, 10),
	textCol("PREDECESSOR_ACTIVITY_EXT", 12, 2),
	textCol("SUCCESSOR_ACTIVITY_ID", 14, 10),
	textCol("SUCCESSOR_ACTIVITY_EXT", 24, 2),
	btrieve.RelationTypeColumn("LAG_TYPE", 26),
	btrieve.DurationColumn("LAG_VALUE", 28),
	textCol("DRIVING_REL", 30, 1),
}

var resColumns = []btrieve.Column{
	textCol("ACTIVITY_ID", 2, 10),
	textCol("UNDEFINED_1", 12, 2),
	textCol("RESOURCE_ID", 14, 8),
	textCol("COST_ACCOUNT_NUMBER", 22, 12),
	shortCol("PERCENT_COMPLETE", 34),
	shortCol("LAG", 36),
	btrieve.DurationColumn("REMAINING_DURATION", 38),
	textCol("RES_DESIGNATOR", 40, 1),
	textCol("DRIVING_RESOURCE", 41, 1),
	intCol("BUDGET_QUANTITY", 42),
	intCol("QUANTITY_THIS_PERIOD", 46),
	intCol("QUANTITY_TO_DATE", 50),
	intCol("QUANTITY_AT_COMPLETE", 54),
	dateCol("ST_RES_EARLY_START", 58),
	dateCol("ST_RES_EARLY_FINISH", 62),
	intCol("UNDEFINED_2", 66),
	intCol("BUDGET_COST", 70),
	intCol("COST_THIS_PERIOD", 74),
	intCol("COST_TO_DATE", 78),
	intCol("COST_AT_COMPLETION", 82),
	dateCol("ST_RES_LATE_START", 86),
	dateCol("ST_RES_LATE_FINISH", 90),
	intCol("UNDEFINED_3", 94),
}

var ritColumns = []btrieve.Column{
	textCol("ACTID", 2, 10),
	textCol("ACTID_EXT", 12, 2),
	textCol("RES", 13, 8),
	textCol("COST_ACCOUNT_NUMBER", 21, 12),
	textCol("RESOURCE_ID", 33, 1),
	textCol("UNDEFINED_1", 34, 3),
	intCol("COMMITMENT_AMOUNT", 37),
	intCol("ORIGINAL_BUDGET", 41),
}

// The escalation date offsets below 100 are as observed in sample files and
// overlap the resource title.
var rlbColumns = []btrieve.Column{
	textCol("RES_ID", 2, 8),
	textCol("UNIT_OF_MEASURE", 10, 4),
	textCol("RES_TITLE", 14, 40),
	intCol("ESCALATION_VAL_1", 54),
	dateCol("ESCALATION_DATE_1", 58),
	intCol("ESCALATION_VAL_2", 62),
	dateCol("ESCALATION_DATE_2", 66),
	intCol("ESCALATION_VAL_3", 70),
	dateCol("ESCALATION_DATE_3", 7),
	intCol("ESCALATION_VAL_4", 78),
	dateCol("ESCALATION_DATE_4", 8),
	intCol("ESCALATION_VAL_5", 86),
	dateCol("ESCALATION_DATE_5", 9),
	intCol("ESCALATION_VAL_6", 94),
	dateCol("ESCALATION_DATE_6", 9),
	intCol("NORM_LIM_VAL_1", 102),
	intCol("MAX_LIM_VAL_1", 106),
	dateCol("LIM_TO_DATE_1", 110),
	intCol("NORM_LIM_VAL_2", 114),
	intCol("MAX_LIM_VAL_2", 118),
	dateCol("LIM_TO_DATE_2", 122),
	intCol("NORM_LIM_VAL_3", 126),
	intCol("MAX_LIM_VAL_3", 130),
	dateCol("LIM_TO_DATE_3", 134),
	intCol("NORM_LIM_VAL_4", 138),
	intCol("MAX_LIM_VAL_4", 142),
	dateCol("LIM_TO_DATE_4", 146),
	intCol("NORM_LIM_VAL_5", 150),
	intCol("MAX_LIM_VAL_5", 154),
	dateCol("LIM_TO_DATE_5", 158),
	intCol("NORM_LIM_VAL_6", 162),
	intCol("MAX_LIM_VAL_6", 166),
	dateCol("LIM_TO_DATE_6", 170),
	shortCol("SHIFT_NUMB", 174),
	shortCol("SHIFT_LIMIT_TABLE", 176),
	shortCol("DRIVING_RESOURCE", 178),
	shortCol("UNDEFINED_1", 180),
}

var srtColumns = []btrieve.Column{
	intCol("SEQ_NUMBER", 2),
	textCol("ACT_ID", 2, 10),
	textCol("UNDEFINED_1", 2, 16),
}

var strColumns = []btrieve.Column{
	textCol("INDICATOR", 2, 1),
	textCol("INDICATOR_EXT", 3, 1),
	shortCol("LEVEL_NUMBER", 4),
	textCol("UNDEFINED_2", 6, 4),
	textCol("CODE_VALUE", 10, 48),
	textCol("CODE_TITLE", 58, 48),
}

var ttlColumns = []btrieve.Column{
	intCol("CODE_NAME", 2),
	textCol("CODE_VALUE", 6, 12),
	textCol("DESCRIPTION", 18, 48),
	byteCol("SORT_ORDER", 66),
}

var wbsColumns = []btrieve.Column{
	textCol("ACTIVITY_ID", 2, 10),
	textCol("ACTIVITY_ID_EXT", 12, 2),
	textCol("CODE_VALUE", 14, 48),
	textCol("INDICATOR", 62, 1),
}

// Budget summary.
var itmColumns = []btrieve.Column{
	textCol("ACTIVITY_ID", 2, 12),
	textCol("RESOURCE", 14, 8),
	textCol("COST_ACCOUNT", 22, 11),
	textCol("CATEGORY", 33, 5),
	shortCol("UNKNOWN_3", 38),
	shortCol("UNKNOWN_4", 40),
}

var ppaColumns = []btrieve.Column{
	textCol("UNKNOWN_1", 2, 10),
	textCol("UNKNOWN_2", 12, 19),
	textCol("UNKNOWN_3", 31, 2),
}

var sprColumns = []btrieve.Column{
	shortCol("UNKNOWN_1", 4),
}

// validHeaderRow keeps DIR rows whose project start falls after the date
// epoch. Stale header slots carry zeroed or garbage start dates.
func validHeaderRow(row btrieve.Row) bool {
	start, err := row.Date("PROJECT_START_DATE")
	return err == nil && start.After(btrieve.DateEpoch)
}

func tableDefinitions() map[string]btrieve.TableDefinition {
	def := func(pageSize, recordSize int, cols []btrieve.Column) btrieve.TableDefinition {
		return btrieve.TableDefinition{PageSize: pageSize, RecordSize: recordSize, Columns: cols}
	}
	keyed := func(pageSize, recordSize int, pk string, v btrieve.RowValidator, cols []btrieve.Column) btrieve.TableDefinition {
		return btrieve.TableDefinition{PageSize: pageSize, RecordSize: recordSize, PrimaryKey: pk, Validator: v, Columns: cols}
	}

	// CAL and DST files share the naming scheme but are not paged files.
	return map[string]btrieve.TableDefinition{
		"AC2":            def(512, 34, ac2Columns),
		"ACC":            def(512, 58, accColumns),
		TableActivities:  keyed(1024, 250, "ACTIVITY_ID", nil, actColumns),
		"AIT":            def(1024, 214, aitColumns),
		"AUD":            def(1024, 143, nil),
		TableHeader:      keyed(512, 506, "SUB_PROJECT_NAME", validHeaderRow, dirColumns),
		"DTL":            def(1024, 64, dtlColumns),
		"HOL":            def(512, 12, holColumns),
		"ITM":            def(1024, 42, itmColumns),
		"LAY":            def(512, 14, nil),
		"LOG":            def(1024, 66, logColumns),
		"PLT":            def(512, 21, nil),
		"PPA":            def(1024, 46, ppaColumns),
		TableRelations:   def(512, 31, relColumns),
		"REP":            def(512, 21, nil),
		TableAssignments: def(1024, 114, resColumns),
		"RIT":            def(1024, 214, ritColumns),
		TableResources:   keyed(1024, 182, "RES_ID", nil, rlbColumns),
		"SPR":            def(1024, 37, sprColumns),
		"SRT":            def(4096, 16, srtColumns),
		TableWBS:         keyed(512, 122, "CODE_VALUE", nil, strColumns),
		"STW":            def(1024, 58, nil),
		"TIM":            def(1024, 153, nil),
		"TTL":            def(1024, 67, ttlColumns),
		TableWBSXref:     keyed(1024, 63, "ACTIVITY_ID", nil, wbsColumns),
	}
}

// NewCatalog returns the registry of P3 table layouts.
func NewCatalog() *btrieve.Catalog {
	cat, err := btrieve.NewCatalog(tableDefinitions())
	if err != nil {
		// The definitions above are static.
		panic(fmt.Sprintf("p3: invalid catalog: %v", err))
	}
	return cat
}
