// The required field names. Keeping them here stops the codec and
// the transform drifting apart on spelling.

package dict

const (
	FldChainsPerModel = "chainsPerModel"
	FldGroupsPerChain = "groupsPerChain"
	FldGroupTypeList  = "groupTypeList"
	FldGroupList      = "groupList"
	FldGroupIdList    = "groupIdList"
	FldInsCodeList    = "insCodeList"
	FldSeqIndexList   = "sequenceIndexList"
	FldSecStructList  = "secStructList"
	FldChainIdList    = "chainIdList"
	FldChainNameList  = "chainNameList"
	FldEntityList     = "entityList"
	FldAtomIdList     = "atomIdList"
	FldAltLocList     = "altLocList"
	FldBFactorList    = "bFactorList"
	FldOccupancyList  = "occupancyList"
	FldXCoordList     = "xCoordList"
	FldYCoordList     = "yCoordList"
	FldZCoordList     = "zCoordList"
	FldNumModels      = "numModels"
	FldNumChains      = "numChains"
	FldNumGroups      = "numGroups"
	FldNumAtoms       = "numAtoms"
	FldStructureId    = "structureId"
	FldMmtfVersion    = "mmtfVersion"
	FldMmtfProducer   = "mmtfProducer"
)
