// Package db looks up optional file metadata from a DynamoDB table
// keyed by file hash. The lookup is off unless METADATA_ENDPOINT is
// set.
package db

import (
	"strconv"

	"github.com/jlowell/chordshift/constants"
	"github.com/jlowell/chordshift/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

func Enabled() bool {
	return constants.GetMetadataEndpoint() != ""
}

func GetFileMetadatas(hashes []string) map[string]model.FileMetadata {
	if len(hashes) > 10 {
		panic("Not supposed to pass in more than 10 hashes!")
	}

	res := make(map[string]model.FileMetadata)

	if len(hashes) == 0 || !Enabled() {
		return res
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, hash := range hashes {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(hash),
		}
		keys = append(keys, key)
	}

	endpoint := constants.GetMetadataEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}

	client := dynamodb.New(session)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			constants.MetadataTable: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}

	for _, v := range dbres.Responses[constants.MetadataTable] {
		var s model.FileMetadata
		if v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		s.Artist = *v["Artist"].S
		s.Release = *v["Release"].S
		s.Title = *v["Title"].S
		res[*v["PK"].S] = s
	}

	return res
}
